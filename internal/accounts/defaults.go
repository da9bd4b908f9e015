package accounts

import "github.com/propbooks-dev/propbooks/internal/model"

// DefaultChart returns the starter chart of accounts for a rental property.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: 1010, Number: "1010", Name: "Operating Cash", Type: model.AccountTypeAsset, Description: "Primary operating account"},
		{ID: 1020, Number: "1020", Name: "Security Deposits Held", Type: model.AccountTypeAsset, Description: "Tenant deposits on hand"},
		{ID: 1110, Number: "1110", Name: "Rent Receivable", Type: model.AccountTypeAsset, Description: "Rent billed, not yet collected"},
		{ID: 2010, Number: "2010", Name: "Security Deposit Liability", Type: model.AccountTypeLiability, Description: "Deposits owed back to tenants"},
		{ID: 3010, Number: "3010", Name: "Owner's Equity", Type: model.AccountTypeEquity},
		{ID: 4010, Number: "4010", Name: "Rent Income", Type: model.AccountTypeRevenue, Description: "Monthly rent"},
		{ID: 4020, Number: "4020", Name: "Utility Income", Type: model.AccountTypeRevenue, Description: "Metered utilities billed to tenants"},
		{ID: 4030, Number: "4030", Name: "Late Fee Income", Type: model.AccountTypeRevenue},
		{ID: 4090, Number: "4090", Name: "Discounts Given", Type: model.AccountTypeRevenue, Description: "Contra income for tenant discounts"},
		{ID: 5010, Number: "5010", Name: "Repairs & Maintenance", Type: model.AccountTypeExpense},
		{ID: 5020, Number: "5020", Name: "Property Management Fees", Type: model.AccountTypeExpense},
		{ID: 5030, Number: "5030", Name: "Insurance", Type: model.AccountTypeExpense},
	}
}
