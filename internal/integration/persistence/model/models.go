package model

// All returns every model that must be migrated, in dependency order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&BarberModel{},
		&CashRegisterModel{},
		&CashMovementModel{},
		&CashClosingModel{},
	}
}
