// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	subscriptionsDomain "github.com/allisson/subtrack/internal/subscriptions/domain"
	subscriptionsUseCase "github.com/allisson/subtrack/internal/subscriptions/usecase"
	customValidation "github.com/allisson/subtrack/internal/validation"
)

// SubscriptionRequest contains the parameters for creating or updating a subscription.
type SubscriptionRequest struct {
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	Currency     string  `json:"currency"`
	BillingCycle string  `json:"billingCycle"`
	MaxSlots     *int    `json:"maxSlots,omitempty"`
}

// Validate checks if the subscription request is valid.
func (r *SubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Cost,
			validation.Min(0.0),
		),
		validation.Field(&r.Currency,
			validation.Required,
			customValidation.Currency,
		),
		validation.Field(&r.BillingCycle,
			validation.Required,
			validation.In(
				string(subscriptionsDomain.BillingCycleWeekly),
				string(subscriptionsDomain.BillingCycleMonthly),
				string(subscriptionsDomain.BillingCycleYearly),
			),
		),
		validation.Field(&r.MaxSlots,
			validation.Min(1),
		),
	)
}

// ToInput converts the request into a use case input.
func (r *SubscriptionRequest) ToInput() subscriptionsUseCase.SubscriptionInput {
	return subscriptionsUseCase.SubscriptionInput{
		Name:         r.Name,
		Cost:         r.Cost,
		Currency:     r.Currency,
		BillingCycle: subscriptionsDomain.BillingCycle(r.BillingCycle),
		MaxSlots:     r.MaxSlots,
	}
}
