package fritzbox

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/icholy/digest"
)

// tr064Port is the port the FRITZ!Box serves the TR-064 API on over TLS.
const tr064Port = "49443"

// Client talks to the TR-064 WANIPConnection service of a FRITZ!Box.
type Client struct {
	config Config
	http   *http.Client
	debug  debugging
}

// NewClient creates a client for the router described by config. When
// config.CACert names a PEM file, the router's certificate is verified
// against it alone. Without a pinned certificate the connection skips
// verification entirely, since the box ships a self-signed certificate
// no system pool knows.
func NewClient(config Config) (*Client, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: true}
	if config.CACert != "" {
		pemData, err := os.ReadFile(config.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pemData) {
			return nil, fmt.Errorf("no certificate found in %s", config.CACert)
		}
		tlsConfig = &tls.Config{RootCAs: pool}
	}

	return &Client{
		config: config,
		http: &http.Client{
			Transport: &digest.Transport{
				Username:  config.Username,
				Password:  config.Password,
				Transport: &http.Transport{TLSClientConfig: tlsConfig},
			},
		},
	}, nil
}

// EnableDebug dumps requests and responses to stderr when enabled.
func (c *Client) EnableDebug(enable bool) {
	c.debug = debugging(enable)
}

func (c *Client) endpoint() string {
	host := c.config.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, tr064Port)
	}
	return "https://" + host + controlURL
}

// perform posts a SOAP action to the control endpoint and returns the raw
// response body. A non-2xx status is decoded as a SOAP fault when the body
// carries one.
func (c *Client) perform(action string, request interface{}) ([]byte, error) {
	envelope, err := encodeEnvelope(request)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", action, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint(), bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SoapAction", soapAction(action))

	c.debug.dumpRequest(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	c.debug.dumpResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if fault := decodeFault(body); fault != nil {
			return nil, fmt.Errorf("%s: %w", action, fault)
		}
		return nil, fmt.Errorf("%s: unexpected status %s", action, resp.Status)
	}

	return body, nil
}
