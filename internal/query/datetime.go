package query

// dateUnitTable maps date-part accessors to DATE_EXTRACT unit names.
// The table is fixed: Day maps to day_of_month, and DayOfWeek follows
// the ISO convention (1 = Monday).
var dateUnitTable = map[string]string{
	"Year":      "year",
	"Month":     "month_of_year",
	"Day":       "day_of_month",
	"Hour":      "hour_of_day",
	"Minute":    "minute_of_hour",
	"Second":    "second_of_minute",
	"DayOfWeek": "day_of_week",
	"DayOfYear": "day_of_year",
}

// Date-part accessors, rendering as DATE_EXTRACT("<unit>", field).

func Year(f Expr) Expr      { return dateExtractExpr{unit: dateUnitTable["Year"], f: f} }
func Month(f Expr) Expr     { return dateExtractExpr{unit: dateUnitTable["Month"], f: f} }
func Day(f Expr) Expr       { return dateExtractExpr{unit: dateUnitTable["Day"], f: f} }
func Hour(f Expr) Expr      { return dateExtractExpr{unit: dateUnitTable["Hour"], f: f} }
func Minute(f Expr) Expr    { return dateExtractExpr{unit: dateUnitTable["Minute"], f: f} }
func Second(f Expr) Expr    { return dateExtractExpr{unit: dateUnitTable["Second"], f: f} }
func DayOfWeek(f Expr) Expr { return dateExtractExpr{unit: dateUnitTable["DayOfWeek"], f: f} }
func DayOfYear(f Expr) Expr { return dateExtractExpr{unit: dateUnitTable["DayOfYear"], f: f} }

// Duration offsets, rendering as (field + n <unit>). Negative offsets
// collapse to subtraction: AddDays(f, -3) renders (field - 3 days).

func AddYears(f Expr, n int64) Expr   { return dateAddExpr{f: f, n: n, unit: "years"} }
func AddMonths(f Expr, n int64) Expr  { return dateAddExpr{f: f, n: n, unit: "months"} }
func AddDays(f Expr, n int64) Expr    { return dateAddExpr{f: f, n: n, unit: "days"} }
func AddHours(f Expr, n int64) Expr   { return dateAddExpr{f: f, n: n, unit: "hours"} }
func AddMinutes(f Expr, n int64) Expr { return dateAddExpr{f: f, n: n, unit: "minutes"} }
func AddSeconds(f Expr, n int64) Expr { return dateAddExpr{f: f, n: n, unit: "seconds"} }

// Now is the current timestamp, rendering as NOW().
func Now() Expr { return nowExpr{} }
