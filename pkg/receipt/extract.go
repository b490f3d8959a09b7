package receipt

import (
	"strconv"
	"strings"

	"freshreceipt-backend/domain"
)

// GetNested resolves a dotted path (e.g. "vendor.name.value") inside a
// loosely typed OCR payload. It returns def as soon as a segment is missing,
// explicitly null, or the current node is not an object; it never fails.
func GetNested(data map[string]interface{}, path string, def interface{}) interface{} {
	var current interface{} = data
	for _, key := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return def
		}
		current, ok = node[key]
		if !ok || current == nil {
			return def
		}
	}
	return current
}

// Extract normalizes a raw OCR provider response into ExtractedData.
// Missing or malformed fields degrade to their defaults, never to an error.
func Extract(raw map[string]interface{}) domain.ExtractedData {
	extracted := domain.ExtractedData{
		StoreName:         toString(GetNested(raw, "vendor.name.value", "Unknown"), "Unknown"),
		TotalAmount:       toFloat(GetNested(raw, "total.value", nil)),
		Subtotal:          toFloat(GetNested(raw, "subtotal.value", nil)),
		Tax:               toFloat(GetNested(raw, "tax.value", nil)),
		Currency:          toString(GetNested(raw, "currency_code.value", ""), ""),
		PurchaseDate:      toString(GetNested(raw, "date.value", ""), ""),
		PaymentMethod:     toString(GetNested(raw, "payment.type.value", ""), ""),
		DocumentReference: toString(GetNested(raw, "invoice_number.value", ""), ""),
		OcrConfidence:     toFloat(GetNested(raw, "meta.exif.AFConfidence", nil)),
		RawResponse:       raw,
	}

	if items, ok := raw["line_items"].([]interface{}); ok {
		for _, item := range items {
			if lineItem, ok := item.(map[string]interface{}); ok {
				extracted.LineItems = append(extracted.LineItems, lineItem)
			}
		}
	}

	return extracted
}

func toString(value interface{}, def string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return def
}

func toFloat(value interface{}) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func toInt(value interface{}) *int {
	if f := toFloat(value); f != nil {
		i := int(*f)
		return &i
	}
	return nil
}
