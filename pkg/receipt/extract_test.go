package receipt

import (
	"testing"
)

func TestGetNested(t *testing.T) {
	data := map[string]interface{}{
		"vendor": map[string]interface{}{
			"name": map[string]interface{}{
				"value": "Acme Grocery",
			},
			"address": nil,
		},
		"total": map[string]interface{}{
			"value": 12.5,
		},
		"flat": "value",
	}

	tests := []struct {
		name string
		path string
		def  interface{}
		want interface{}
	}{
		{"nested hit", "vendor.name.value", "Unknown", "Acme Grocery"},
		{"single segment", "flat", "", "value"},
		{"missing key", "vendor.phone.value", "none", "none"},
		{"explicit null", "vendor.address", "none", "none"},
		{"scalar mid path", "flat.deeper", "def", "def"},
		{"missing root", "nothing.here", nil, nil},
		{"numeric leaf", "total.value", nil, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetNested(data, tt.path, tt.def)
			if got != tt.want {
				t.Errorf("GetNested(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetNestedNilData(t *testing.T) {
	if got := GetNested(nil, "a.b", "def"); got != "def" {
		t.Errorf("GetNested on nil data = %v, want def", got)
	}
}

func TestExtract(t *testing.T) {
	raw := map[string]interface{}{
		"vendor": map[string]interface{}{
			"name": map[string]interface{}{"value": "Acme Grocery"},
		},
		"total":          map[string]interface{}{"value": 9.5},
		"subtotal":       map[string]interface{}{"value": 8.8},
		"tax":            map[string]interface{}{"value": 0.7},
		"currency_code":  map[string]interface{}{"value": "USD"},
		"date":           map[string]interface{}{"value": "2025-03-01 10:30:00"},
		"payment":        map[string]interface{}{"type": map[string]interface{}{"value": "credit_card"}},
		"invoice_number": map[string]interface{}{"value": "R-1001"},
		"meta": map[string]interface{}{
			"exif": map[string]interface{}{"AFConfidence": 0.98},
		},
		"line_items": []interface{}{
			map[string]interface{}{"description": "Milk", "total": 3.5},
			"not an object",
			map[string]interface{}{"description": "Bread"},
		},
	}

	extracted := Extract(raw)

	if extracted.StoreName != "Acme Grocery" {
		t.Errorf("StoreName = %q, want Acme Grocery", extracted.StoreName)
	}
	if extracted.TotalAmount == nil || *extracted.TotalAmount != 9.5 {
		t.Errorf("TotalAmount = %v, want 9.5", extracted.TotalAmount)
	}
	if extracted.Subtotal == nil || *extracted.Subtotal != 8.8 {
		t.Errorf("Subtotal = %v, want 8.8", extracted.Subtotal)
	}
	if extracted.Tax == nil || *extracted.Tax != 0.7 {
		t.Errorf("Tax = %v, want 0.7", extracted.Tax)
	}
	if extracted.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", extracted.Currency)
	}
	if extracted.PurchaseDate != "2025-03-01 10:30:00" {
		t.Errorf("PurchaseDate = %q", extracted.PurchaseDate)
	}
	if extracted.PaymentMethod != "credit_card" {
		t.Errorf("PaymentMethod = %q, want credit_card", extracted.PaymentMethod)
	}
	if extracted.DocumentReference != "R-1001" {
		t.Errorf("DocumentReference = %q, want R-1001", extracted.DocumentReference)
	}
	if extracted.OcrConfidence == nil || *extracted.OcrConfidence != 0.98 {
		t.Errorf("OcrConfidence = %v, want 0.98", extracted.OcrConfidence)
	}
	if len(extracted.LineItems) != 2 {
		t.Fatalf("LineItems length = %d, want 2 (non-object entries dropped)", len(extracted.LineItems))
	}
	if extracted.LineItems[0]["description"] != "Milk" {
		t.Errorf("first line item = %v", extracted.LineItems[0])
	}
}

func TestExtractDefaults(t *testing.T) {
	extracted := Extract(map[string]interface{}{"unrelated": true})

	if extracted.StoreName != "Unknown" {
		t.Errorf("StoreName = %q, want Unknown", extracted.StoreName)
	}
	if extracted.TotalAmount != nil {
		t.Errorf("TotalAmount = %v, want nil", extracted.TotalAmount)
	}
	if extracted.OcrConfidence != nil {
		t.Errorf("OcrConfidence = %v, want nil", extracted.OcrConfidence)
	}
	if extracted.Currency != "" || extracted.PurchaseDate != "" {
		t.Errorf("scalar defaults not empty: %q %q", extracted.Currency, extracted.PurchaseDate)
	}
	if len(extracted.LineItems) != 0 {
		t.Errorf("LineItems = %v, want empty", extracted.LineItems)
	}
}

func TestExtractMalformedShapes(t *testing.T) {
	raw := map[string]interface{}{
		"vendor":     "just a string",
		"total":      map[string]interface{}{"value": "not a number"},
		"line_items": "not a list",
	}

	extracted := Extract(raw)

	if extracted.StoreName != "Unknown" {
		t.Errorf("StoreName = %q, want Unknown", extracted.StoreName)
	}
	if extracted.TotalAmount != nil {
		t.Errorf("TotalAmount = %v, want nil", extracted.TotalAmount)
	}
	if len(extracted.LineItems) != 0 {
		t.Errorf("LineItems = %v, want empty", extracted.LineItems)
	}
}

func TestToFloatCoercions(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *float64
	}{
		{"float64", 3.5, floatPtr(3.5)},
		{"int", 7, floatPtr(7)},
		{"numeric string", "3.50", floatPtr(3.5)},
		{"padded string", " 2 ", floatPtr(2)},
		{"garbage string", "abc", nil},
		{"nil", nil, nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toFloat(tt.value)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("toFloat(%v) = %v, want %v", tt.value, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("toFloat(%v) = %v, want %v", tt.value, *got, *tt.want)
			}
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
