package utils

import (
	"net/http"
	u "net/url"

	"github.com/rs/zerolog/log"
)

type HTTPClientConfig struct {
	ProxyURL string
}

type MgetHTTPClient struct {
	client *http.Client
}

// NewMgetHTTPClient builds a client that never negotiates a content encoding,
// so Content-Length always describes the bytes read from the body. There is
// deliberately no client timeout.
func NewMgetHTTPClient(cfg HTTPClientConfig) *MgetHTTPClient {
	transport := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		DisableCompression: true,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := u.Parse(cfg.ProxyURL)
		if err != nil {
			log.Error().Err(err).Str("proxy", cfg.ProxyURL).Msg("Invalid proxy URL, proceeding without proxy")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			log.Debug().Str("proxy", proxyURL.Redacted()).Msg("Using proxy for connections")
		}
	}
	return &MgetHTTPClient{
		client: &http.Client{Transport: transport},
	}
}

func (c *MgetHTTPClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept-Encoding", "identity")
	return c.client.Do(req)
}
