package config

import (
	"testing"

	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw  string
		want otlpEndpoint
	}{
		{"http://localhost:4318", otlpEndpoint{"localhost:4318", "/v1/traces", true}},
		{"https://otel.example.com/custom", otlpEndpoint{"otel.example.com", "/custom", false}},
		{"collector:4318", otlpEndpoint{"collector:4318", "/v1/traces", true}},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseOTLPEndpoint(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOTLPEndpoint_Rejects(t *testing.T) {
	for _, raw := range []string{"", "grpc://collector:4317", "collector:4318/v1/traces", "http://"} {
		_, err := parseOTLPEndpoint(raw)
		assert.Error(t, err, raw)
	}
}

func TestLoadTracingConfig_Defaults(t *testing.T) {
	for _, key := range []string{"OTEL_TRACES_ENABLED", "OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_TRACES_SAMPLE_RATIO"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadTracingConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.Endpoint)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Empty(t, cfg.RouterServiceName())
}

func TestLoadTracingConfig_Enabled(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "  ")
	t.Setenv("OTEL_TRACES_SAMPLE_RATIO", "0.25")

	cfg, err := LoadTracingConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName, "blank name falls back")
	assert.Equal(t, 0.25, cfg.SampleRatio)
	assert.Equal(t, DefaultServiceName, cfg.RouterServiceName())
}

func TestLoadTracingConfig_RejectsSampleRatio(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLE_RATIO", "1.5")

	_, err := LoadTracingConfig()
	assert.ErrorContains(t, err, "OTEL_TRACES_SAMPLE_RATIO")
}

func TestSetupTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := SetupTracing(discardLogger(), &TracingConfig{Enabled: false}, kvstore.DriverSQLite)
	require.NoError(t, err)
	assert.Nil(t, shutdown)

	shutdown, err = SetupTracing(discardLogger(), nil, kvstore.DriverSQLite)
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestSetupTracing_BadEndpoint(t *testing.T) {
	_, err := SetupTracing(discardLogger(), &TracingConfig{Enabled: true, ServiceName: DefaultServiceName, Endpoint: "grpc://collector:4317"}, kvstore.DriverPostgres)
	assert.Error(t, err)
}

func TestTracingResource(t *testing.T) {
	res, err := tracingResource(DefaultServiceName, ParseEnvironment("production"), kvstore.DriverRedis)
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value("service.name")
	require.True(t, ok)
	assert.Equal(t, DefaultServiceName, name.AsString())

	driver, ok := set.Value(attrStoreDriver)
	require.True(t, ok)
	assert.Equal(t, kvstore.DriverRedis, driver.AsString())

	env, ok := set.Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "production", env.AsString())
}

func TestTracingResource_OmitsEmptyEnvironment(t *testing.T) {
	res, err := tracingResource(DefaultServiceName, "", kvstore.DriverSQLite)
	require.NoError(t, err)

	_, ok := res.Set().Value("deployment.environment")
	assert.False(t, ok)
}
