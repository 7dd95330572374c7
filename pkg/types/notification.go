package types

type NotificationStatus string

const (
	NotificationStatusReceived NotificationStatus = "received"
	NotificationStatusSent     NotificationStatus = "sent"
	NotificationStatusFailed   NotificationStatus = "failed"
)

type NotificationKind string

const (
	NotificationKindInvoice NotificationKind = "invoice"
	NotificationKindEnquiry NotificationKind = "enquiry"
)
