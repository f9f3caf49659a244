package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func TestRegisterValidations_Decimal(t *testing.T) {
	RegisterValidations()

	zero := decimal.Zero
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		req     OpenCashRegisterRequest
		wantErr bool
	}{
		{name: "missing balance", req: OpenCashRegisterRequest{}, wantErr: true},
		{name: "zero balance", req: OpenCashRegisterRequest{OpeningBalance: &zero}, wantErr: false},
		{name: "negative balance", req: OpenCashRegisterRequest{OpeningBalance: &negative}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordMovementRequest_BarberID(t *testing.T) {
	RegisterValidations()

	amount := decimal.NewFromInt(10)
	base := RecordMovementRequest{
		CashID:        "5f0c6a4e-8f7e-4c1b-9a51-2b9d8f3c1e77",
		Type:          "EXPENSE",
		Amount:        &amount,
		PaymentMethod: "CASH",
	}

	tests := []struct {
		name     string
		barberID string
		wantErr  bool
	}{
		{name: "no barber", barberID: "", wantErr: false},
		{name: "valid barber", barberID: "0b6f2f1e-3c4d-4e5f-8a9b-1c2d3e4f5a6b", wantErr: false},
		{name: "malformed barber", barberID: "barber-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.BarberID = tt.barberID
			err := binding.Validator.ValidateStruct(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
