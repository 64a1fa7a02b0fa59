package models

// UnknownDistrict is stored when the source data carries no district for an offering
const UnknownDistrict = "Unknown"

// DeliveryChannel names a report delivery channel
type DeliveryChannel string

const (
	ChannelWhatsApp DeliveryChannel = "whatsapp"
	ChannelEmail    DeliveryChannel = "email"
)

// DeliveryStatus is the outcome of one delivery attempt
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliverySkipped DeliveryStatus = "skipped"
)
