package domain

// Well-known account codes used by the automated payment and spending
// journal workflows.
const (
	CodeCash             = "1111-00"
	CodeBankCurrent      = "1112-01"
	CodeBankSavings      = "1113-01"
	CodeCommonFeeRevenue = "4100-01"
	CodeMaintenance      = "5320-05"
)

// DefaultAccount is one row of the seed chart of accounts.
type DefaultAccount struct {
	Code          string
	Name          string
	NameEN        string
	Type          AccountType
	NormalBalance BalanceType
	Level         int
	System        bool
}

// DefaultChartOfAccounts is the village chart of accounts created on first
// start. System accounts are the ones automated journal entries post to.
var DefaultChartOfAccounts = []DefaultAccount{
	// Assets (1xxx)
	{CodeCash, "เงินสด", "Cash", AccountTypeAsset, BalanceTypeDebit, 1, true},
	{CodeBankCurrent, "ธนาคารกสิกรไทย CA", "Kasikorn Bank Current Account", AccountTypeAsset, BalanceTypeDebit, 1, true},
	{CodeBankSavings, "ธนาคารกสิกรไทย SA", "Kasikorn Bank Savings Account", AccountTypeAsset, BalanceTypeDebit, 1, true},
	{"1130-01", "ลูกหนี้ค่าส่วนกลาง", "Accounts Receivable - Common Area Fees", AccountTypeAsset, BalanceTypeDebit, 1, true},
	{"1130-02", "ลูกหนี้อื่นๆ", "Other Accounts Receivable", AccountTypeAsset, BalanceTypeDebit, 1, false},
	{"1160-01", "ค่าใช้จ่ายจ่ายล่วงหน้า", "Prepaid Expenses", AccountTypeAsset, BalanceTypeDebit, 1, false},
	{"1210-01", "อุปกรณ์และเครื่องใช้", "Equipment and Tools", AccountTypeAsset, BalanceTypeDebit, 1, false},

	// Liabilities (2xxx)
	{"2110-01", "เจ้าหนี้การค้า", "Accounts Payable", AccountTypeLiability, BalanceTypeCredit, 1, true},
	{"2120-01", "เจ้าหนี้อื่นๆ", "Other Payables", AccountTypeLiability, BalanceTypeCredit, 1, false},
	{"2131-01", "ค่าไฟฟ้าค้างจ่าย", "Accrued Electricity Expenses", AccountTypeLiability, BalanceTypeCredit, 1, false},
	{"2140-01", "เงินรับล่วงหน้า", "Advance Receipts", AccountTypeLiability, BalanceTypeCredit, 1, false},

	// Equity (3xxx)
	{"3110-01", "เงินกองทุนสำรองฉุกเฉิน", "Emergency Reserve Fund", AccountTypeEquity, BalanceTypeCredit, 1, false},
	{"3130-01", "กำไรสะสม", "Retained Earnings", AccountTypeEquity, BalanceTypeCredit, 1, true},
	{"3140-01", "กำไร(ขาดทุน)ปีปัจจุบัน", "Current Year Profit (Loss)", AccountTypeEquity, BalanceTypeCredit, 1, true},

	// Revenue (4xxx)
	{CodeCommonFeeRevenue, "รายรับค่าส่วนกลาง", "Common Area Fee Revenue", AccountTypeRevenue, BalanceTypeCredit, 1, true},
	{"4100-02", "รายรับค่าน้ำ", "Water Fee Revenue", AccountTypeRevenue, BalanceTypeCredit, 1, false},
	{"4200-01", "ดอกเบี้ยรับ", "Interest Income", AccountTypeRevenue, BalanceTypeCredit, 1, false},
	{"4300-01", "รายรับค่าปรับ", "Penalty Revenue", AccountTypeRevenue, BalanceTypeCredit, 1, false},

	// Expenses (5xxx)
	{"5110-01", "เงินเดือนและค่าจ้าง", "Salaries and Wages", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{"5210-01", "ค่ารักษาความปลอดภัย", "Security Services", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{"5220-01", "ค่าทำความสะอาด", "Cleaning Services", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{"5320-01", "ค่าไฟฟ้าส่วนกลาง", "Common Area Electricity", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{"5320-02", "ค่าน้ำประปาส่วนกลาง", "Common Area Water", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{CodeMaintenance, "ค่าดูแลส่วนกลาง", "Common Area Maintenance", AccountTypeExpense, BalanceTypeDebit, 1, true},
	{"5330-01", "ค่าซ่อมแซมอาคาร", "Building Repairs", AccountTypeExpense, BalanceTypeDebit, 1, false},
	{"5340-01", "ค่าใช้จ่ายสำนักงาน", "Office Expenses", AccountTypeExpense, BalanceTypeDebit, 1, false},
}
