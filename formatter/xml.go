package formatter

import (
	"strings"

	"github.com/theoremus-urban-solutions/aseag-nextbus/siri"
)

// BuildXML serializes a SIRI response to XML
func (rb *ResponseBuilder) BuildXML(res *siri.SiriResponse) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<Siri xmlns="http://www.siri.org.uk/siri" version="2.0">`)
	sd := res.Siri.ServiceDelivery
	b.WriteString("<ServiceDelivery>")
	writeElement(&b, "ResponseTimestamp", sd.ResponseTimestamp)
	writeElement(&b, "ProducerRef", sd.ProducerRef)
	for _, sm := range sd.StopMonitoringDelivery {
		writeStopMonitoringXML(&b, sm)
	}
	b.WriteString("</ServiceDelivery>")
	b.WriteString("</Siri>")
	return []byte(b.String())
}

func writeStopMonitoringXML(b *strings.Builder, sm siri.StopMonitoringDelivery) {
	b.WriteString(`<StopMonitoringDelivery version="`)
	b.WriteString(xmlEscape(sm.Version))
	b.WriteString(`">`)
	writeElement(b, "ResponseTimestamp", sm.ResponseTimestamp)
	writeElement(b, "ValidUntil", sm.ValidUntil)
	for _, visit := range sm.MonitoredStopVisit {
		b.WriteString("<MonitoredStopVisit>")
		writeElement(b, "RecordedAtTime", visit.RecordedAtTime)
		writeElement(b, "MonitoringRef", visit.MonitoringRef)
		writeMVJXML(b, visit.MonitoredVehicleJourney)
		b.WriteString("</MonitoredStopVisit>")
	}
	b.WriteString("</StopMonitoringDelivery>")
}

func writeMVJXML(b *strings.Builder, mvj siri.MonitoredVehicleJourney) {
	b.WriteString("<MonitoredVehicleJourney>")
	writeElement(b, "LineRef", mvj.LineRef)
	if fr := mvj.FramedVehicleJourneyRef; fr != nil {
		b.WriteString("<FramedVehicleJourneyRef>")
		writeElement(b, "DataFrameRef", fr.DataFrameRef)
		writeElement(b, "DatedVehicleJourneyRef", fr.DatedVehicleJourneyRef)
		b.WriteString("</FramedVehicleJourneyRef>")
	}
	writeElement(b, "VehicleMode", mvj.VehicleMode)
	writeElement(b, "PublishedLineName", mvj.PublishedLineName)
	writeElement(b, "OperatorRef", mvj.OperatorRef)
	writeElement(b, "DestinationName", mvj.DestinationName)
	if mvj.Monitored {
		b.WriteString("<Monitored>true</Monitored>")
	} else {
		b.WriteString("<Monitored>false</Monitored>")
	}
	writeElement(b, "Delay", mvj.Delay)

	call := mvj.MonitoredCall
	b.WriteString("<MonitoredCall>")
	writeElement(b, "StopPointRef", call.StopPointRef)
	writeElement(b, "AimedDepartureTime", call.AimedDepartureTime)
	writeElement(b, "ExpectedDepartureTime", call.ExpectedDepartureTime)
	writeElement(b, "DepartureStatus", call.DepartureStatus)
	writeElement(b, "DeparturePlatformName", call.DeparturePlatformName)
	b.WriteString("</MonitoredCall>")

	b.WriteString("</MonitoredVehicleJourney>")
}

// writeElement skips empty values.
func writeElement(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
