package dispatcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dispatcher_types "github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/fault"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/request"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/eventbus"
	mux_manager "github.com/BrobridgeOrg/gravity-dispatcher/pkg/mux_manager"
	jsoniter "github.com/json-iterator/go"
	nats "github.com/nats-io/nats.go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type testEventBus struct {
	messages chan published
}

func (eb *testEventBus) Connect() error            { return nil }
func (eb *testEventBus) Close()                    {}
func (eb *testEventBus) GetConnection() *nats.Conn { return nil }

func (eb *testEventBus) Publish(subject string, data []byte) error {
	eb.messages <- published{subject: subject, data: data}
	return nil
}

type testApp struct {
	eventBus eventbus.EventBus
}

func (a *testApp) GetDispatcher() dispatcher_types.Dispatcher { return nil }
func (a *testApp) GetEventBus() eventbus.EventBus             { return a.eventBus }
func (a *testApp) GetMuxManager() mux_manager.Manager         { return nil }

func TestInitReportFaultsToEventBus(t *testing.T) {

	viper.Set("dispatcher.mode", "unawaited")
	viper.Set("dispatcher.delay", "200ms")
	viper.Set("dispatcher.reportFaults", true)
	viper.Set("eventbus.faultSubject", "test.dispatcher.faults")
	defer viper.Reset()

	eb := &testEventBus{
		messages: make(chan published, 1),
	}

	d := NewDispatcher(&testApp{eventBus: eb})
	require.NoError(t, d.Init())
	assert.Equal(t, ModeUnawaited, d.Mode())

	reporters, ok := d.reporter.(fault.Reporters)
	require.True(t, ok)
	assert.Len(t, reporters, 2)

	srv := httptest.NewServer(d)
	defer srv.Close()
	defer d.Close()

	// Leave before the handler writes
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/anything", nil)
	require.NoError(t, err)

	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)

	select {
	case msg := <-eb.messages:
		assert.Equal(t, "test.dispatcher.faults", msg.subject)

		var f fault.Fault
		require.NoError(t, jsoniter.Unmarshal(msg.data, &f))
		assert.Equal(t, "unawaited", f.Mode)
		assert.Equal(t, request.ErrSinkClosed.Error(), f.Reason)
		assert.NotZero(t, f.RequestID)
	case <-time.After(2 * time.Second):
		t.Fatal("no fault was published")
	}
}

func TestInitReportFaultsWithoutEventBus(t *testing.T) {

	viper.Set("dispatcher.mode", "unawaited")
	viper.Set("dispatcher.reportFaults", true)
	defer viper.Reset()

	d := NewDispatcher(&testApp{})
	require.NoError(t, d.Init())
	defer d.Close()

	reporters, ok := d.reporter.(fault.Reporters)
	require.True(t, ok)
	assert.Len(t, reporters, 1)
}

func TestInitFaultsSilentByDefault(t *testing.T) {

	viper.Set("dispatcher.mode", "unawaited")
	defer viper.Reset()

	d := NewDispatcher(&testApp{})
	require.NoError(t, d.Init())
	defer d.Close()

	assert.Nil(t, d.reporter)
}
