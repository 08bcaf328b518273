package notify

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMS sends citizen-facing text messages through Twilio. When the Twilio
// environment variables are absent the sender is disabled and every Send
// call is a no-op, so local setups work without an account.
type SMS struct {
	client *twilio.RestClient
	from   string
}

// NewSMSFromEnv builds the sender from TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER.
func NewSMSFromEnv() *SMS {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")

	if sid == "" || token == "" || from == "" {
		log.Println("Twilio not configured, SMS notifications disabled")
		return &SMS{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})

	return &SMS{client: client, from: from}
}

func (s *SMS) Enabled() bool {
	return s.client != nil
}

// SendWelcome notifies a newly registered citizen. Best effort: failures
// are logged, registration never fails because of them.
func (s *SMS) SendWelcome(fullName, phone string) {
	if !s.Enabled() || phone == "" {
		return
	}

	params := &api.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf(
		"Namaste %s, your Nepal eGovernance Polling account is ready. You can now take part in citizen polls.",
		fullName,
	))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send welcome SMS to %s: %v", phone, err)
	}
}
