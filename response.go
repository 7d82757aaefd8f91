package fritzbox

import (
	"encoding/xml"
	"fmt"
)

// FaultError is a SOAP fault answered by the router, carrying the TR-064
// error code and description when the fault detail has them.
type FaultError struct {
	Code        string
	Description string
	ErrorCode   int
	ErrorText   string
}

func (e *FaultError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("fault %d: %s", e.ErrorCode, e.ErrorText)
	}
	return fmt.Sprintf("fault %s: %s", e.Code, e.Description)
}

// Error code the router answers with when a port mapping table index points
// past the last entry.
const faultIndexInvalid = 713

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail struct {
		UPnPError struct {
			ErrorCode        int    `xml:"errorCode"`
			ErrorDescription string `xml:"errorDescription"`
		} `xml:"UPnPError"`
	} `xml:"detail"`
}

type faultEnvelope struct {
	XMLName xml.Name   `xml:"Envelope"`
	Fault   *soapFault `xml:"Body>Fault"`
}

// decodeFault pulls a SOAP fault out of an error response body. It returns
// nil when the body holds no recognisable fault.
func decodeFault(body []byte) *FaultError {
	var envelope faultEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil || envelope.Fault == nil {
		return nil
	}
	fault := envelope.Fault
	return &FaultError{
		Code:        fault.Code,
		Description: fault.String,
		ErrorCode:   fault.Detail.UPnPError.ErrorCode,
		ErrorText:   fault.Detail.UPnPError.ErrorDescription,
	}
}

type externalIPResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	IP      string   `xml:"Body>GetExternalIPAddressResponse>NewExternalIPAddress"`
}

type portMappingEntryResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Entry   struct {
		RemoteHost     string `xml:"NewRemoteHost"`
		ExternalPort   string `xml:"NewExternalPort"`
		Protocol       string `xml:"NewProtocol"`
		InternalPort   string `xml:"NewInternalPort"`
		InternalClient string `xml:"NewInternalClient"`
		Enabled        string `xml:"NewEnabled"`
		Description    string `xml:"NewPortMappingDescription"`
		LeaseDuration  string `xml:"NewLeaseDuration"`
	} `xml:"Body>GetGenericPortMappingEntryResponse"`
}
