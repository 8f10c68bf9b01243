package upstreams

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

const (
	dohScheme   = "doh://"
	httpsScheme = "https://"

	dohClientTimeout       = 10 * time.Second
	dohIdleConnTimeout     = 30 * time.Second
	dohMaxIdleConns        = 10
	dohMaxIdleConnsPerHost = 5

	dnsMessageContentType = "application/dns-message"

	// dohMaxResponseSize is the largest possible DNS message.
	dohMaxResponseSize = dns.MaxMsgSize
)

// DoHUpstream implements Upstream using DNS-over-HTTPS (RFC 8484, POST).
type DoHUpstream struct {
	BaseUpstream
	url    string
	client *http.Client
}

// NewDoHUpstream creates a new DNS-over-HTTPS upstream.
// The domain parameter restricts the upstream to a specific domain (empty = all domains).
func NewDoHUpstream(urlStr string, restrictedDomain string, timeout time.Duration) *DoHUpstream {
	if strings.HasPrefix(urlStr, dohScheme) {
		urlStr = httpsScheme + strings.TrimPrefix(urlStr, dohScheme)
	}
	if timeout <= 0 {
		timeout = dohClientTimeout
	}

	return &DoHUpstream{
		BaseUpstream: NewBaseUpstream(restrictedDomain),
		url:          urlStr,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				MaxIdleConns:        dohMaxIdleConns,
				IdleConnTimeout:     dohIdleConnTimeout,
				DisableCompression:  true,
				MaxIdleConnsPerHost: dohMaxIdleConnsPerHost,
			},
		},
	}
}

// Query sends a DNS query to the DoH upstream.
func (d *DoHUpstream) Query(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
	packed, err := req.Pack()
	if err != nil {
		return nil, fmt.Errorf("failed to pack DNS message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", dnsMessageContentType)
	httpReq.Header.Set("Accept", dnsMessageContentType)

	log.Debugf("[%04x] Querying upstream: %s", req.Id, d)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("DoH request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DoH request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, dohMaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read DoH response: %w", err)
	}

	dnsResp := new(dns.Msg)
	if err := dnsResp.Unpack(body); err != nil {
		return nil, fmt.Errorf("failed to unpack DNS response: %w", err)
	}
	return dnsResp, nil
}

func (d *DoHUpstream) String() string {
	return d.describe(d.url)
}

// Close closes any resources held by the upstream.
func (d *DoHUpstream) Close() error {
	d.client.CloseIdleConnections()
	return nil
}
