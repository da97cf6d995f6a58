// Package feed decodes uploaded trade files and normalizes their orders
// into typed instructions for settlement.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
)

// RootElement is the element that wraps the order list.
const RootElement = "trades"

// RawOrder is one <order> element exactly as it appears in the upload.
// Every field is text; conversion happens in Normalize.
type RawOrder struct {
	ClientID    string `xml:"client_id"`
	StockSymbol string `xml:"stock_symbol"`
	Type        string `xml:"type"`
	Quantity    string `xml:"quantity"`
	Price       string `xml:"price"`
	TradeDate   string `xml:"trade_date"`
}

type document struct {
	XMLName xml.Name
	Orders  []RawOrder `xml:"order"`
}

// Decode reads an XML trades document. A document whose root is not
// <trades> yields no orders rather than an error; malformed XML is an error.
func Decode(r io.Reader) ([]RawOrder, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode trades xml: %w", err)
	}
	if doc.XMLName.Local != RootElement {
		return nil, nil
	}
	return doc.Orders, nil
}
