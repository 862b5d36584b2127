package dialogexpr

// Expression types that the package itself constructs or dispatches on.
// Every other built-in is looked up by its registered name.
const (
	TypeConstant = "Constant"
	TypeAccessor = "Accessor"
	TypeElement  = "Element"

	TypeAdd      = "+"
	TypeSubtract = "-"
	TypeMultiply = "*"
	TypeDivide   = "/"
	TypeMod      = "%"
	TypePower    = "^"

	TypeEqual              = "=="
	TypeNotEqual           = "!="
	TypeLessThan           = "<"
	TypeLessThanOrEqual    = "<="
	TypeGreaterThan        = ">"
	TypeGreaterThanOrEqual = ">="

	TypeAnd    = "&&"
	TypeOr     = "||"
	TypeNot    = "!"
	TypeConcat = "&"

	TypeIf       = "if"
	TypeExists   = "exists"
	TypeCoalesce = "coalesce"
	TypeForeach  = "foreach"
	TypeSelect   = "select"
	TypeWhere    = "where"

	TypeSetPathToValue = "setPathToValue"
)
