package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// WhatsAppConfig holds Twilio credentials and the sending number
type WhatsAppConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	CountryCode string
}

// messageCreator is the subset of the Twilio API used here
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// WhatsAppSender sends messages through the Twilio WhatsApp API
type WhatsAppSender struct {
	api    messageCreator
	config WhatsAppConfig
	logger zerolog.Logger
}

// NewWhatsAppSender creates a Twilio backed WhatsAppSender
func NewWhatsAppSender(config WhatsAppConfig, logger zerolog.Logger) *WhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})
	return newWhatsAppSender(client.Api, config, logger)
}

func newWhatsAppSender(api messageCreator, config WhatsAppConfig, logger zerolog.Logger) *WhatsAppSender {
	return &WhatsAppSender{api: api, config: config, logger: logger}
}

// Channel implements Sender
func (s *WhatsAppSender) Channel() string {
	return "whatsapp"
}

// Send implements Sender
func (s *WhatsAppSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.config.AccountSID == "" || s.config.AuthToken == "" || s.config.FromNumber == "" {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(whatsappAddress(s.config.FromNumber, ""))
	params.SetTo(whatsappAddress(msg.To, s.config.CountryCode))
	params.SetBody(msg.Body)
	if msg.LinkURL != "" {
		params.SetMediaUrl([]string{msg.LinkURL})
	}

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("Failed to send WhatsApp message")
		return "", fmt.Errorf("failed to send whatsapp message: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	s.logger.Info().Str("sid", sid).Str("to", msg.To).Msg("WhatsApp message queued")
	return sid, nil
}

// whatsappAddress formats a number as whatsapp:+<cc><number>.
// Numbers already starting with + keep their own country code.
func whatsappAddress(number, countryCode string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), whatsappPrefix)
	number = strings.NewReplacer(" ", "", "-", "").Replace(number)
	if !strings.HasPrefix(number, "+") && countryCode != "" {
		number = "+" + strings.TrimPrefix(countryCode, "+") + number
	}
	return whatsappPrefix + number
}
