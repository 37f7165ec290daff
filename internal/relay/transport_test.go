package relay

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientDefaults(t *testing.T) {
	hc, err := NewHTTPClient(TransportOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, hc.Timeout)
	tr := hc.Transport.(*http.Transport)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	assert.Nil(t, tr.Proxy)

	hc, err = NewHTTPClient(TransportOptions{Timeout: time.Second, VerifyTLS: true, Proxy: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)
	assert.Equal(t, time.Second, hc.Timeout)
	tr = hc.Transport.(*http.Transport)
	assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
	req, _ := http.NewRequest(http.MethodGet, "https://oast.pro/poll", nil)
	pu, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "socks5://127.0.0.1:1080", pu.String())
}

func TestNewHTTPClientRejectsBadOptions(t *testing.T) {
	_, err := NewHTTPClient(TransportOptions{Proxy: "ftp://x"})
	assert.Error(t, err)
	_, err = NewHTTPClient(TransportOptions{DNSOverride: "not-an-ip"})
	assert.Error(t, err)
}

func TestDNSOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Host))
	}))
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	hc, err := NewHTTPClient(TransportOptions{DNSOverride: "127.0.0.1"})
	require.NoError(t, err)
	resp, err := hc.Get("http://interaction.invalid:" + u.Port() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
