package billing

import (
	"encoding/json"
	"fmt"

	orgRepo "bcal/database/repository/organization"
	"bcal/config"
	"bcal/models"
	"bcal/utils"

	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// planByPrice maps subscribed Stripe prices back to plan tiers. Unknown
// prices keep the organization on its current tier.
var planLimits = map[string]struct {
	Users int
	Teams int
}{
	"starter":  {Users: 25, Teams: 10},
	"business": {Users: 0, Teams: 0},
}

// BillingService connects organizations to Stripe subscriptions.
type BillingService interface {
	// EnsureCustomer creates the Stripe customer for an organization once.
	EnsureCustomer(org *models.Organization, email string) error
	// Subscribe starts a subscription on the configured price.
	Subscribe(org *models.Organization) error
	// PortalURL opens a Stripe billing portal session for the organization.
	PortalURL(org *models.Organization, returnURL string) (string, error)
	// HandleWebhook verifies and applies a Stripe event.
	HandleWebhook(payload []byte, signature string) error
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Orgs orgRepo.OrganizationRepository
}

// EnsureCustomer creates the Stripe customer for the organization if it does
// not have one yet.
func (s *DefaultBillingService) EnsureCustomer(org *models.Organization, email string) error {
	if org.StripeCustomerID != "" {
		return nil
	}
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(org.Name),
	}
	params.AddMetadata("organization_id", org.ID)

	c, err := customer.New(params)
	if err != nil {
		return fmt.Errorf("failed to create stripe customer: %w", err)
	}
	org.StripeCustomerID = c.ID
	return s.Orgs.Update(org)
}

// Subscribe starts a subscription on the configured price.
func (s *DefaultBillingService) Subscribe(org *models.Organization) error {
	if org.StripeCustomerID == "" {
		return fmt.Errorf("organization %s has no billing customer", org.ID)
	}
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(org.StripeCustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(config.AppConfig.StripePriceID)},
		},
	}
	sub, err := subscription.New(params)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	org.StripeSubscriptionID = sub.ID
	org.SubscriptionStatus = string(sub.Status)
	return s.Orgs.Update(org)
}

// PortalURL opens a Stripe billing portal session where the organization can
// manage its payment method and plan.
func (s *DefaultBillingService) PortalURL(org *models.Organization, returnURL string) (string, error) {
	if org.StripeCustomerID == "" {
		return "", fmt.Errorf("organization %s has no billing customer", org.ID)
	}
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(org.StripeCustomerID),
		ReturnURL: stripe.String(returnURL),
	}
	sess, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create billing portal session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies the event signature and applies subscription state
// changes to the owning organization.
func (s *DefaultBillingService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.applySubscription(event, false)
	case "customer.subscription.deleted":
		return s.applySubscription(event, true)
	default:
		utils.GetLogger().Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *DefaultBillingService) applySubscription(event stripe.Event, deleted bool) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription event: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription event %s has no customer", event.ID)
	}

	org, err := s.Orgs.GetByStripeCustomer(sub.Customer.ID)
	if err != nil {
		return err
	}

	if deleted {
		org.SubscriptionStatus = models.SubscriptionCanceled
		org.PlanTier = "trial"
		org.MaxUsers = 5
		org.MaxTeams = 2
	} else {
		org.StripeSubscriptionID = sub.ID
		org.SubscriptionStatus = string(sub.Status)
		if sub.Status == stripe.SubscriptionStatusActive {
			org.PlanTier = "starter"
			if limits, ok := planLimits[org.PlanTier]; ok {
				org.MaxUsers = limits.Users
				org.MaxTeams = limits.Teams
			}
		}
	}

	utils.GetLogger().Info("applied subscription event",
		zap.String("org_id", org.ID),
		zap.String("status", org.SubscriptionStatus),
	)
	return s.Orgs.Update(org)
}
