package httpclient

import (
	"net/http"

	"booking-portal/config"

	circuit "github.com/rubyist/circuitbreaker"
	"go.elastic.co/apm/module/apmhttp"
)

const (
	BreakerThreshold   = "threshold"
	BreakerConsecutive = "consecutive"
	BreakerRate        = "rate"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, cbType string) *circuit.Breaker {
	switch cbType {
	case BreakerThreshold:
		return circuit.NewThresholdBreaker(cfg.Threshold)
	case BreakerRate:
		return circuit.NewRateBreaker(cfg.Rate, cfg.MinSamples)
	default:
		return circuit.NewConsecutiveBreaker(cfg.Threshold)
	}
}

func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	client := apmhttp.WrapClient(&http.Client{Timeout: cfg.Timeout})
	return circuit.NewHTTPClientWithBreaker(cb, cfg.Timeout, client)
}
