package mq

import (
	"context"
	"encoding/json"

	"github.com/sentraid/sentra/internal/auth/usecase"
	"github.com/sentraid/sentra/internal/pkg/instrument"
	"github.com/sentraid/sentra/internal/pkg/messaging"
	"github.com/sentraid/sentra/internal/pkg/uid"
	"github.com/sentraid/sentra/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
	uid    uid.NumberID
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation, uid uid.NumberID) *Messaging {
	return &Messaging{client: client, ins: ins, uid: uid}
}

// publish marshals msg and sends it with the request's correlation ID so
// consumers can dedup on event_id and trace back to the originating call.
func (m *Messaging) publish(ctx context.Context, name, destination string, msg any) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishSecretEnrolled(ctx context.Context, msg usecase.SecretEnrolledEvent) error {
	return m.publish(ctx, "PublishSecretEnrolled", event.OTPSecretEnrolledDestination, event.OTPSecretEnrolledMessage{
		EventID:         m.uid.Generate(),
		PrincipalID:     msg.PrincipalID,
		Username:        msg.Username,
		SecretRef:       msg.SecretRef,
		ProvisioningURI: msg.ProvisioningURI,
	})
}

func (m *Messaging) PublishOTPVerified(ctx context.Context, msg usecase.OTPVerifiedEvent) error {
	return m.publish(ctx, "PublishOTPVerified", event.OTPVerifiedDestination, event.OTPVerifiedMessage{
		EventID:     m.uid.Generate(),
		PrincipalID: msg.PrincipalID,
		Username:    msg.Username,
	})
}

func (m *Messaging) PublishSecretRotated(ctx context.Context, msg usecase.SecretRotatedEvent) error {
	return m.publish(ctx, "PublishSecretRotated", event.OTPSecretRotatedDestination, event.OTPSecretRotatedMessage{
		EventID:         m.uid.Generate(),
		PrincipalID:     msg.PrincipalID,
		Username:        msg.Username,
		SecretRef:       msg.SecretRef,
		ProvisioningURI: msg.ProvisioningURI,
	})
}
