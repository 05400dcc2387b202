package main

import (
	"context"
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/app/contracts"
	"email-attestation-service/internal/app/delivery/http/controllers"
	"email-attestation-service/internal/app/delivery/http/middlewares"
	"email-attestation-service/internal/app/delivery/http/routers"
	"email-attestation-service/internal/app/drivers/database"
	"email-attestation-service/internal/app/drivers/logger"
	mailerDriver "email-attestation-service/internal/app/drivers/mailer"
	"email-attestation-service/internal/app/drivers/messaging"
	storageDriver "email-attestation-service/internal/app/drivers/storage"
	"email-attestation-service/internal/app/services/shared/credentials"
	"email-attestation-service/internal/app/services/shared/mailer"
	"email-attestation-service/internal/app/services/shared/ratelimiter"
	"email-attestation-service/internal/app/services/shared/redis"
	"email-attestation-service/internal/app/services/shared/smtp"
	"email-attestation-service/internal/app/services/shared/storage"
	"email-attestation-service/internal/app/services/verifier"
	"email-attestation-service/internal/pkg/constvars"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		logrus.Fatalf("Error loading internal config: %v", err)
	}

	log := logger.NewLogrusLogger(internalConfig)

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		ProcessLogger:  log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if driverConfig.Redis.Enabled {
		bootstrap.Redis, err = database.NewRedisClient(startupCtx, driverConfig)
		if err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		log.Println("Successfully connected to redis")
	}

	if internalConfig.Verifier.DispatchMode == constvars.DispatchModeQueue {
		bootstrap.RabbitMQ, err = messaging.NewRabbitMQ(driverConfig)
		if err != nil {
			log.Fatalf("Error connecting to rabbitmq: %v", err)
		}
		log.Println("Successfully connected to rabbitmq")
	}

	if driverConfig.Minio.Enabled {
		bootstrap.Minio, err = storageDriver.NewMinio(startupCtx, driverConfig, internalConfig.Minio.BucketName)
		if err != nil {
			log.Fatalf("Error connecting to minio: %v", err)
		}
		log.Println("Successfully connected to minio")
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstrapping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Printf("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	driverConfig := bootstrap.DriverConfig

	// Credentials
	issuer, err := credentials.NewJWTIssuer(internalConfig, bootstrap.Logger)
	if err != nil {
		return fmt.Errorf("credential issuer: %w", err)
	}

	// Mail transport
	smtpClient := mailerDriver.NewSMTPClient(driverConfig)
	dispatch, transport, err := buildMailTransport(bootstrap, smtpClient)
	if err != nil {
		return err
	}

	// Code image archive
	var archive contracts.CodeImageArchive
	if bootstrap.Minio != nil {
		archive = storage.NewMinioStorage(bootstrap.Minio, internalConfig.Minio.BucketName, bootstrap.Logger)
	}

	// Verifier
	emailVerifier, err := verifier.New(verifier.Settings{
		CallbackURL:         internalConfig.Verifier.CallbackURL,
		User:                smtpClient.EmailSender,
		Pass:                smtpClient.Password,
		Host:                smtpClient.Host,
		Port:                smtpClient.Port,
		Secure:              smtpClient.Secure,
		ConfirmSubject:      internalConfig.Verifier.ConfirmSubject,
		ReceiveSubject:      internalConfig.Verifier.ReceiveSubject,
		CustomRequestParams: internalConfig.Verifier.CustomRequestParams,
		Credentials:         issuer,
		CodeSize:            internalConfig.Verifier.CodeSize,
		Dispatch:            dispatch,
		Transport:           transport,
		Archive:             archive,
		Logger:              bootstrap.Logger,
	})
	if err != nil {
		return fmt.Errorf("email verifier: %w", err)
	}

	// Per-address throttle
	var limiter controllers.RequestLimiter
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		limiter = ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	}

	middlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: internalConfig,
	}
	emailController := controllers.NewEmailController(bootstrap.Logger, emailVerifier, limiter, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, emailController)
	return nil
}

func buildMailTransport(bootstrap *config.Bootstrap, smtpClient *mailerDriver.SMTPClient) (verifier.DispatchMode, contracts.MailTransport, error) {
	switch mode := bootstrap.InternalConfig.Verifier.DispatchMode; mode {
	case constvars.DispatchModeNone, "":
		return verifier.DispatchNone, nil, nil
	case constvars.DispatchModeSMTP:
		return verifier.DispatchSend, smtp.NewSMTPTransport(smtpClient, bootstrap.Logger), nil
	case constvars.DispatchModeQueue:
		transport, err := mailer.NewMailerService(
			bootstrap.RabbitMQ,
			smtpClient.EmailSender,
			bootstrap.InternalConfig.RabbitMQ.MailerQueue,
			bootstrap.Logger,
		)
		if err != nil {
			return "", nil, fmt.Errorf("mailer queue: %w", err)
		}
		return verifier.DispatchSend, transport, nil
	default:
		return "", nil, fmt.Errorf("unknown mailer dispatch mode %q", mode)
	}
}
