package parser

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineClass
	}{
		{"--------------------------------", LineSeparator},
		{"================", LineSeparator},
		{"~~~~~~~~", LineSeparator},
		{"Jl. Merdeka No. 45", LineGarbage},
		{"Kasir: Budi", LineGarbage},
		{"Tel: 021-555-1234", LineGarbage},
		{"PPN 11%", LineTax},
		{"Pajak 10%", LineTax},
		{"Service Charge 5%", LineServiceCharge},
		{"Voucher  -50.000", LineDiscount},
		{"Diskon Akhir Tahun", LineDiscount},
		{"Cash 100.000", LinePayment},
		{"Kembalian 5.000", LinePayment},
		{"QRIS", LinePayment},
		{"Thank you for visiting!", LineFooter},
		{"Terima kasih", LineFooter},
		{"Nasi Goreng Spesial 25.000", LineContent},
		{"Es Teh Manis", LineContent},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsNumericNoise(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"0812 3344 5566", true},
		{"12345", true},
		{"12/08/2024 19:32", true},
		{"Nasi Goreng 25.000", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isNumericNoise(tt.line); got != tt.want {
			t.Errorf("isNumericNoise(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsTotalsTrigger(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		itemCount int
		want      bool
	}{
		{"subtotal always triggers", "Subtotal 23.000", 0, true},
		{"total needs an item", "Total 23.310", 0, false},
		{"total with items", "Total 23.310", 1, true},
		{"grand total forces", "GRAND TOTAL 99.000", 0, true},
		{"amount due", "Amount Due 12.000", 0, true},
		{"cash tender", "Cash 50.000", 0, true},
		{"item count line", "3 Items", 0, true},
		{"plain item line", "Nasi Goreng 25.000", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTotalsTrigger(tt.line, tt.itemCount); got != tt.want {
				t.Errorf("isTotalsTrigger(%q, %d) = %v, want %v", tt.line, tt.itemCount, got, tt.want)
			}
		})
	}
}
