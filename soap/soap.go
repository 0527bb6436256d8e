// Package soap builds and parses the SOAP envelopes of the UPnP control
// protocol. It stays deliberately small: an envelope is a body of raw
// XML, actions are flat name/value argument lists.
package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

type Envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    Body     `xml:"Body"`
}

type Body struct {
	// Content captures the whole body as raw XML.
	Content []byte `xml:",innerxml"`
}

// Action is one decoded control request.
type Action struct {
	Name       string
	ServiceURN string
	Args       map[string]string
}

// Arg is one response argument. Responses are ordered: control points
// exist that read Browse results positionally.
type Arg struct {
	Name  string
	Value string
}

// ParseAction decodes the action name, its service URN and its flat
// arguments out of a SOAP request body.
func ParseAction(body []byte) (*Action, error) {
	var env Envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshalling SOAP envelope: %w", err)
	}

	decoder := xml.NewDecoder(bytes.NewReader(env.Body.Content))
	action := &Action{Args: make(map[string]string)}

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err != io.EOF {
				return nil, fmt.Errorf("decoding SOAP body: %w", err)
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if action.Name == "" {
				action.Name = t.Name.Local
				action.ServiceURN = t.Name.Space
			} else {
				var value string
				if err := decoder.DecodeElement(&value, &t); err != nil {
					log.Warnf("❌ cannot decode SOAP argument %s: %v", t.Name.Local, err)
					continue
				}
				action.Args[t.Name.Local] = value
			}
		}
	}

	if action.Name == "" {
		return nil, fmt.Errorf("SOAP body without action element")
	}
	return action, nil
}

// BuildResponse constructs the <u:ActionNameResponse> envelope.
func BuildResponse(serviceURN, action string, args []Arg) ([]byte, error) {
	var body bytes.Buffer
	body.WriteString(fmt.Sprintf(`<u:%sResponse xmlns:u="%s">`, action, serviceURN))
	for _, arg := range args {
		body.WriteString(fmt.Sprintf("<%s>%s</%s>", arg.Name, xmlEscape(arg.Value), arg.Name))
	}
	body.WriteString(fmt.Sprintf(`</u:%sResponse>`, action))
	return marshalEnvelope(body.Bytes())
}

// BuildFault constructs a standard UPnP error response.
func BuildFault(code int, description string) ([]byte, error) {
	detail := fmt.Sprintf(
		`<UPnPError xmlns="urn:schemas-upnp-org:control-1-0"><errorCode>%d</errorCode><errorDescription>%s</errorDescription></UPnPError>`,
		code, xmlEscape(description))
	body := fmt.Sprintf(
		`<s:Fault><faultcode>s:Client</faultcode><faultstring>UPnPError</faultstring><detail>%s</detail></s:Fault>`,
		detail)
	return marshalEnvelope([]byte(body))
}

func marshalEnvelope(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	buf.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	buf.WriteString(`<s:Body>`)
	buf.Write(content)
	buf.WriteString(`</s:Body></s:Envelope>`)
	return buf.Bytes(), nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
