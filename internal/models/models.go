package models

import "github.com/shopspring/decimal"

func init() {
	// The console reads money fields as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AllModels lists every table owned by the service, in migration order.
func AllModels() []any {
	return []any{
		&Plan{},
		&Customer{},
		&Subscription{},
		&SubscriptionLog{},
		&SubscriptionDailySnapshot{},
		&NotificationLog{},
		&Faq{},
		&Enquiry{},
		&SiteContent{},
	}
}
