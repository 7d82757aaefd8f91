package fritzbox

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// The authenticated TR-064 endpoint hosts the WANIPConnection service under
// this URN and control path.
const (
	serviceURN = "urn:dslforum-org:service:WANIPConnection:1"
	controlURL = "/upnp/control/wanipconnection1"
)

const (
	soapNamespace     = "http://schemas.xmlsoap.org/soap/envelope/"
	soapEncodingStyle = "http://schemas.xmlsoap.org/soap/encoding/"
)

type soapEnvelope struct {
	XMLName       xml.Name `xml:"s:Envelope"`
	Namespace     string   `xml:"xmlns:s,attr"`
	EncodingStyle string   `xml:"s:encodingStyle,attr"`
	Body          soapBody `xml:"s:Body"`
}

// The action element carries its own XMLName, which overrides the field name
// when the envelope is marshaled.
type soapBody struct {
	Action interface{}
}

type addPortMappingRequest struct {
	XMLName        xml.Name `xml:"u:AddPortMapping"`
	Namespace      string   `xml:"xmlns:u,attr"`
	RemoteHost     string   `xml:"NewRemoteHost"`
	ExternalPort   string   `xml:"NewExternalPort"`
	Protocol       string   `xml:"NewProtocol"`
	InternalPort   string   `xml:"NewInternalPort"`
	InternalClient string   `xml:"NewInternalClient"`
	Enabled        string   `xml:"NewEnabled"`
	Description    string   `xml:"NewPortMappingDescription"`
	LeaseDuration  string   `xml:"NewLeaseDuration"`
}

type deletePortMappingRequest struct {
	XMLName      xml.Name `xml:"u:DeletePortMapping"`
	Namespace    string   `xml:"xmlns:u,attr"`
	RemoteHost   string   `xml:"NewRemoteHost"`
	ExternalPort string   `xml:"NewExternalPort"`
	Protocol     string   `xml:"NewProtocol"`
}

type getExternalIPAddressRequest struct {
	XMLName   xml.Name `xml:"u:GetExternalIPAddress"`
	Namespace string   `xml:"xmlns:u,attr"`
}

type getGenericPortMappingEntryRequest struct {
	XMLName   xml.Name `xml:"u:GetGenericPortMappingEntry"`
	Namespace string   `xml:"xmlns:u,attr"`
	Index     string   `xml:"NewPortMappingIndex"`
}

// encodeEnvelope renders a single action wrapped in a SOAP 1.1 envelope,
// prefixed with the XML declaration the router expects. encoding/xml escapes
// every argument value on the way out, the description included.
func encodeEnvelope(action interface{}) ([]byte, error) {
	envelope := soapEnvelope{
		Namespace:     soapNamespace,
		EncodingStyle: soapEncodingStyle,
		Body:          soapBody{Action: action},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(envelope); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// soapAction returns the quoted SoapAction header value for an action name.
func soapAction(name string) string {
	return fmt.Sprintf("%q", serviceURN+"#"+name)
}

// soapBool renders booleans the 1/0 way the protocol wants.
func soapBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
