package mailer

import (
	"email-attestation-service/internal/app/config"
	"net"
	"net/smtp"
	"strconv"
)

type SMTPClient struct {
	Host        string
	Port        int
	Username    string
	Password    string
	EmailSender string
	Secure      bool
	Auth        smtp.Auth
}

func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	auth := smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	sender := driverConfig.SMTP.EmailSender
	if sender == "" {
		sender = driverConfig.SMTP.Username
	}
	return &SMTPClient{
		Host:        driverConfig.SMTP.Host,
		Port:        driverConfig.SMTP.Port,
		Username:    driverConfig.SMTP.Username,
		Password:    driverConfig.SMTP.Password,
		EmailSender: sender,
		Secure:      driverConfig.SMTP.Secure,
		Auth:        auth,
	}
}

func (c *SMTPClient) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
