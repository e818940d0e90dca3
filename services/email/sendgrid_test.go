package emailsvc

import (
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func Test_sendgridService_SendMessages_waitsForDelivery(t *testing.T) {
	conf := &core.Config{
		AppName: "Mahudhurio",
		Mail: core.MailConfig{
			DefaultFromEmail: "noreply@test.cd",
			SendgridAPIKey:   "SG.test",
		},
	}
	svc := NewSendgridService(conf, nopLogger{})

	var (
		mu        sync.Mutex
		delivered []rest.Request
	)
	origAPIFunc := sendgridAPIFunc
	defer func() { sendgridAPIFunc = origAPIFunc }()
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		time.Sleep(20 * time.Millisecond) // simulate network latency
		mu.Lock()
		delivered = append(delivered, req)
		mu.Unlock()
		return &rest.Response{StatusCode: 202}, nil
	}

	to := []mail.Address{{Address: "ops@test.cd"}}
	svc.SendMessages(
		&core.EmailMessage{To: to, Subject: "Weekly digest", TextContent: "hello"},
		&core.EmailMessage{To: to, Subject: "Daily digest", TextContent: "hi"},
		&core.EmailMessage{Subject: "no recipients", TextContent: "dropped"},
	)

	// both deliveries must have completed by the time SendMessages returns
	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 2 {
		t.Fatalf("expected 2 delivered messages, got %d", len(delivered))
	}
	for _, req := range delivered {
		assert.Equal(t, rest.Post, req.Method)
		assert.Contains(t, string(req.Body), "[Mahudhurio] ")
	}
}
