package email

import (
	"time"

	"github.com/melbooking/melbooking_backend/config"
)

const defaultSMTPTimeout = 30 * time.Second

type Config struct {
	Enabled bool
	From    string
	SMTP    config.SMTPConfig
}

func (c Config) timeout() time.Duration {
	if c.SMTP.TimeoutSeconds <= 0 {
		return defaultSMTPTimeout
	}
	return time.Duration(c.SMTP.TimeoutSeconds) * time.Second
}

// implicitTLS reports whether the relay expects TLS from the first byte
// (SMTPS on 465) rather than a STARTTLS upgrade.
func (c Config) implicitTLS() bool {
	return c.SMTP.UseTLS && c.SMTP.Port == 465
}

func FromCentralConfig(c config.EmailConfig) Config {
	return Config{Enabled: c.Enabled, From: c.From, SMTP: c.SMTP}
}
