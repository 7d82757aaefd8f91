package fritzbox

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
)

// PortMapping represents a FRITZ!Box port forwarding entry. Address and port
// fields stay strings: values travel to the router exactly as given, and the
// router is the authority on what it accepts.
type PortMapping struct {
	RemoteHost     string
	ExternalPort   string
	Protocol       string
	InternalPort   string
	InternalClient string
	Enabled        bool
	Description    string
	LeaseDuration  string
}

// AddPortMapping creates or overwrites the forwarding entry addressed by the
// mapping's protocol and external port. A disabled mapping stays listed on
// the router but forwards nothing, which is what toggling relies on.
func (c *Client) AddPortMapping(m PortMapping) error {
	request := addPortMappingRequest{
		Namespace:      serviceURN,
		RemoteHost:     m.RemoteHost,
		ExternalPort:   m.ExternalPort,
		Protocol:       m.Protocol,
		InternalPort:   m.InternalPort,
		InternalClient: m.InternalClient,
		Enabled:        soapBool(m.Enabled),
		Description:    m.Description,
		LeaseDuration:  m.LeaseDuration,
	}
	_, err := c.perform("AddPortMapping", request)
	return err
}

// DeletePortMapping removes the forwarding entry addressed by protocol and
// external port.
func (c *Client) DeletePortMapping(protocol, externalPort string) error {
	request := deletePortMappingRequest{
		Namespace:    serviceURN,
		ExternalPort: externalPort,
		Protocol:     protocol,
	}
	_, err := c.perform("DeletePortMapping", request)
	return err
}

// ExternalIPAddress asks the router for its current WAN address.
func (c *Client) ExternalIPAddress() (string, error) {
	body, err := c.perform("GetExternalIPAddress", getExternalIPAddressRequest{Namespace: serviceURN})
	if err != nil {
		return "", err
	}
	var response externalIPResponse
	if err := xml.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("GetExternalIPAddress: decode response: %w", err)
	}
	return response.IP, nil
}

// PortMapping fetches the forwarding entry at the given table index.
func (c *Client) PortMapping(index int) (*PortMapping, error) {
	request := getGenericPortMappingEntryRequest{
		Namespace: serviceURN,
		Index:     strconv.Itoa(index),
	}
	body, err := c.perform("GetGenericPortMappingEntry", request)
	if err != nil {
		return nil, err
	}
	var response portMappingEntryResponse
	if err := xml.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("GetGenericPortMappingEntry: decode response: %w", err)
	}
	entry := response.Entry
	return &PortMapping{
		RemoteHost:     entry.RemoteHost,
		ExternalPort:   entry.ExternalPort,
		Protocol:       entry.Protocol,
		InternalPort:   entry.InternalPort,
		InternalClient: entry.InternalClient,
		Enabled:        entry.Enabled == "1",
		Description:    entry.Description,
		LeaseDuration:  entry.LeaseDuration,
	}, nil
}

// PortMappings walks the forwarding table from index 0 until the router
// reports the end of the table.
func (c *Client) PortMappings() ([]PortMapping, error) {
	var mappings []PortMapping
	for index := 0; ; index++ {
		mapping, err := c.PortMapping(index)
		if err != nil {
			var fault *FaultError
			if errors.As(err, &fault) && fault.ErrorCode == faultIndexInvalid {
				return mappings, nil
			}
			return nil, err
		}
		mappings = append(mappings, *mapping)
	}
}
