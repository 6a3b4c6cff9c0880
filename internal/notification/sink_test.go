package notification

import (
	"bytes"
	"context"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func bufferedSink() (*Sink, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return NewSink(logger.WithField("component", "sink-test"), "node-a"), &buf
}

func TestSink_OrderConfirmation(t *testing.T) {
	sink, buf := bufferedSink()

	err := sink.Handle(context.Background(), []byte(`{"type":"order_confirmation","orderId":"ORD-1","username":"alice","productName":"Widget","quantity":3,"totalAmount":30}`))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Your order ORD-1 for 3x Widget (Total: $30) has been confirmed!")
	assert.Contains(t, out, "to=alice")
	assert.Contains(t, out, "served_by=node-a")
}

func TestSink_OtherKinds(t *testing.T) {
	sink, buf := bufferedSink()

	require.NoError(t, sink.Handle(context.Background(), []byte(`{"type":"password_reset", "userId":"u1"}`)))
	assert.True(t, strings.Contains(buf.String(), `password_reset`))
	assert.Contains(t, buf.String(), `userId`)
}

func TestSink_RejectsNonObjects(t *testing.T) {
	sink, _ := bufferedSink()

	for _, payload := range []string{`[1,2]`, `"text"`, `{`, `null`} {
		err := sink.Handle(context.Background(), []byte(payload))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, payload)
	}
}
