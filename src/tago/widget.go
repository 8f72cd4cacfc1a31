package tago

import (
	"context"
	"log"
	"net/http"

	"github.com/maddiesch/serverless"
)

const (
	userNameVariable         = "user_name"
	userEmailVariable        = "user_email"
	userPasswordVariable     = "user_password"
	actionValidationVariable = "action_validation"

	validationErrorColor = "darkred"
)

// AccountSession is an account client able to resolve device tokens.
type AccountSession interface {
	AccountAPI
	DeviceTokenFinder
}

// Connector builds the platform clients for one invocation.
type Connector interface {
	Account(token string) AccountSession
	Device(token string) DeviceAPI
}

// HTTPConnector builds clients that talk to the platform over HTTP.
type HTTPConnector struct {
	Config Config
	Client *http.Client
}

func (c HTTPConnector) Account(token string) AccountSession {
	return NewAccount(c.Config, token, c.Client)
}

func (c HTTPConnector) Device(token string) DeviceAPI {
	return NewDevice(c.Config, token, c.Client)
}

// Router maps widget events to run user management on the platform.
type Router struct {
	connector Connector
	ledger    Ledger
	logger    *log.Logger
}

// NewRouter returns a router. A nil ledger records nothing and a nil logger
// writes to the serverless logger.
func NewRouter(connector Connector, ledger Ledger, logger *log.Logger) *Router {
	if ledger == nil {
		ledger = NopLedger{}
	}
	if logger == nil {
		logger = serverless.GetLogger()
	}
	return &Router{connector: connector, ledger: ledger, logger: logger}
}

// Run handles one analysis invocation. Nothing escapes: every failure ends in
// the log and, once a device is known, in the widget's validation field.
func (r *Router) Run(ctx context.Context, inv Invocation) {
	scope := inv.Data
	if len(scope) == 0 || scope[0] == nil {
		r.logger.Print("This analysis must be triggered by a widget.")
		return
	}

	env := ParseEnvironment(inv.Environment)
	if err := env.Validate(); err != nil {
		r.logger.Print(err.Error())
		return
	}

	account := r.connector.Account(env.AccountToken())

	// The origin is always the device holding the widget that triggered the run.
	deviceToken, err := account.TokenByName(ctx, scope.Origin())
	if err != nil {
		r.logger.Printf("[ERROR] - unable to find a token for device %q: %v", scope.Origin(), err)
		return
	}
	device := r.connector.Device(deviceToken)

	w := &widgetRun{
		account: account,
		device:  device,
		scope:   scope,
		index:   scope.Index(),
		logger:  r.logger,
	}

	action := env.WidgetExec()
	entry := NewLedgerEntry(action, scope.Origin())

	switch action {
	case WidgetInsert:
		err = w.insert(ctx, entry)
	case WidgetEdit:
		err = w.edit(ctx, entry)
	case WidgetDelete:
		err = w.delete(ctx, entry)
	default:
		r.logger.Print("Script end.")
		return
	}

	if err != nil {
		failure := widgetFailureForError(err)
		r.logger.Printf("[ERROR] - %v", failure)

		entry.Outcome = OutcomeFailed
		entry.Error = failure.Error()

		sendErr := device.SendData(ctx, &Data{
			Variable: actionValidationVariable,
			Value:    err.Error(),
			Metadata: map[string]interface{}{"color": validationErrorColor},
		})
		if sendErr != nil {
			r.logger.Printf("[ERROR] - %v", sendErr)
		}
	}

	r.ledger.Record(ctx, entry)

	r.logger.Print("Script end.")
}

type widgetRun struct {
	account AccountSession
	device  DeviceAPI
	scope   Scope
	index   map[string]*Data
	logger  *log.Logger
}

func (w *widgetRun) reportError(err error) {
	w.logger.Printf("[ERROR] - %v", err)
}

// requiredValue logs message when variable is absent or blank. It never stops the run.
func (w *widgetRun) requiredValue(variable, message string) string {
	d, ok := w.index[variable]
	if !ok || d.StringValue() == "" {
		w.logger.Print(message)
		return ""
	}
	return d.StringValue()
}

func (w *widgetRun) rawValue(variable string) interface{} {
	if d, ok := w.index[variable]; ok {
		return d.Value
	}
	return nil
}

func (w *widgetRun) stringValue(variable string) *string {
	d, ok := w.index[variable]
	if !ok {
		return nil
	}
	value := d.StringValue()
	return &value
}

func (w *widgetRun) insert(ctx context.Context, entry *LedgerEntry) error {
	info, err := w.account.Info(ctx)
	if err != nil {
		return err
	}

	name := w.requiredValue(userNameVariable, "You must provide a name.")
	email := w.requiredValue(userEmailVariable, "You must provide an email.")
	password := w.requiredValue(userPasswordVariable, "You must provide a password.")

	user := &User{
		Name:     name,
		Email:    email,
		Password: password,
		Timezone: info.Timezone,
		Active:   true,
	}
	if err := serverless.GetValidator().Struct(user); err != nil {
		w.logger.Printf("User input did not validate: %v", err)
	}

	existing, err := w.account.ListUsers(ctx, UserQueryByField("email", email))
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		w.logger.Print("User already exists.")
		entry.UserID = existing[0].ID
		entry.Outcome = OutcomeSkipped
		return nil
	}

	entry.Outcome = OutcomeSucceeded

	createErr := w.account.CreateUser(ctx, user)
	if createErr != nil {
		w.reportError(createErr)
		entry.Outcome = OutcomeFailed
		entry.Error = createErr.Error()
	} else {
		w.logger.Printf("User %s successfully created.", name)
	}

	created, err := w.account.ListUsers(ctx, UserQueryByField("email", email))
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return &WidgetFailure{
			Reason: "The new user could not be found",
			Code:   "USER_NOT_CREATED",
			Err:    createErr,
		}
	}
	entry.UserID = created[0].ID

	// The user id in the metadata links the row back to the user for edits and deletes.
	if err := w.device.SendData(ctx, w.scope.StampUserID(created[0].ID)...); err != nil {
		w.reportError(err)
		entry.Outcome = OutcomeFailed
		entry.Error = err.Error()
	}

	return nil
}

// findUser returns the user the triggering row is linked to, or nil.
func (w *widgetRun) findUser(ctx context.Context, entry *LedgerEntry) (*User, error) {
	userID, err := w.scope.UserID()
	if err != nil {
		return nil, err
	}
	entry.UserID = userID

	users, err := w.account.ListUsers(ctx, UserQueryByField("id", userID))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		w.logger.Print("No user found.")
		entry.Outcome = OutcomeSkipped
		return nil, nil
	}
	return users[0], nil
}

func (w *widgetRun) edit(ctx context.Context, entry *LedgerEntry) error {
	user, err := w.findUser(ctx, entry)
	if err != nil || user == nil {
		return err
	}

	update := UserUpdate{
		Name:     w.rawValue(userNameVariable),
		Email:    w.rawValue(userEmailVariable),
		Password: w.stringValue(userPasswordVariable),
	}

	// Overwrites the old values of the fields present in the row.
	if err := w.account.EditUser(ctx, entry.UserID, update); err != nil {
		w.reportError(err)
		entry.Outcome = OutcomeFailed
		entry.Error = err.Error()
		return nil
	}

	w.logger.Printf("User %s successfully edited.", user.Name)
	entry.Outcome = OutcomeSucceeded
	return nil
}

func (w *widgetRun) delete(ctx context.Context, entry *LedgerEntry) error {
	user, err := w.findUser(ctx, entry)
	if err != nil || user == nil {
		return err
	}

	if err := w.account.DeleteUser(ctx, entry.UserID); err != nil {
		w.reportError(err)
		entry.Outcome = OutcomeFailed
		entry.Error = err.Error()
		return nil
	}

	w.logger.Printf("User %s successfully deleted.", user.Name)
	entry.Outcome = OutcomeSucceeded
	return nil
}
