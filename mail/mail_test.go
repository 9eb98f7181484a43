package mail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veltrix/hr-desk/mail"
	"go.uber.org/zap"
)

func TestSend_DryRunWithoutHost(t *testing.T) {
	s := mail.NewSender(mail.Config{Username: "hr@veltrix.com"}, zap.NewNop())

	err := s.Send([]string{"sneha.reddy@veltrix.com"}, "Welcome", "Welcome aboard!", false)
	assert.NoError(t, err)
	assert.Equal(t, "hr@veltrix.com", s.From())
}

func TestSend_RequiresRecipients(t *testing.T) {
	s := mail.NewSender(mail.Config{}, zap.NewNop())

	err := s.Send(nil, "Welcome", "Welcome aboard!", false)
	assert.Error(t, err)
}
