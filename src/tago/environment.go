package tago

const (
	accountTokenKey = "account_token"
	widgetExecKey   = "_widget_exec"

	accountTokenLength = 36
)

// WidgetAction is the hidden `_widget_exec` parameter the platform sends with
// input form and dynamic table triggers.
type WidgetAction string

const (
	WidgetInsert WidgetAction = "insert"
	WidgetEdit   WidgetAction = "edit"
	WidgetDelete WidgetAction = "delete"
)

// EnvironmentVariable is one entry of an analysis environment.
type EnvironmentVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Environment is the analysis environment keyed by name.
type Environment map[string]string

// ParseEnvironment turns the environment list into a map. Later keys win.
func ParseEnvironment(vars []EnvironmentVariable) Environment {
	env := make(Environment, len(vars))
	for _, v := range vars {
		env[v.Key] = v.Value
	}
	return env
}

func (e Environment) AccountToken() string {
	return e[accountTokenKey]
}

func (e Environment) WidgetExec() WidgetAction {
	return WidgetAction(e[widgetExecKey])
}

// Validate checks the account token is present and shaped like one.
func (e Environment) Validate() error {
	token, ok := e[accountTokenKey]
	if !ok || token == "" {
		return ErrMissingAccountToken
	}
	if len(token) != accountTokenLength {
		return ErrInvalidAccountToken
	}
	return nil
}

// Invocation is the payload an analysis run receives.
type Invocation struct {
	Environment []EnvironmentVariable `json:"environment"`
	Data        Scope                 `json:"data"`
}
