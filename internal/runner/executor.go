package runner

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mykulyak/pagecheck/internal/assertion"
	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/pageobject"
)

// Actions handled by the runner itself rather than by an assertion.
const (
	ActionNavigate     = "Navigate"
	ActionDismissAlert = "DismissAlert"
	ActionWaitToLoad   = "WaitToLoad"
)

var (
	driverType  = reflect.TypeOf((*browser.Driver)(nil)).Elem()
	elementType = reflect.TypeOf((*browser.Element)(nil)).Elem()
	pointType   = reflect.TypeOf(browser.Point{})
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

type alertDismisser interface {
	DismissAlert() error
}

// executor runs the steps of one suite.
type executor struct {
	session    browser.Session
	page       *pageobject.Page
	assertions *assertion.Assertions
}

func (ex *executor) execute(step Step) error {
	params := make([]string, len(step.Params))
	for i, p := range step.Params {
		params[i] = expandEnv(strings.TrimSpace(p))
	}

	switch step.Action {
	case ActionNavigate:
		if len(params) != 1 {
			return fmt.Errorf("%s expects 1 parameter, got %d", ActionNavigate, len(params))
		}
		return ex.session.Navigate(params[0])
	case ActionDismissAlert:
		d, ok := ex.session.(alertDismisser)
		if !ok {
			return fmt.Errorf("%s: %w", ActionDismissAlert, browser.ErrUnsupported)
		}
		return d.DismissAlert()
	case ActionWaitToLoad:
		if ex.page == nil {
			return errors.New("WaitToLoad needs a page")
		}
		return ex.page.WaitToLoad()
	}

	return ex.executeMethod(ex.assertions, step.Action, params)
}

// executeMethod calls the method methodName of obj. browser.Driver parameters
// are filled with the session; every other parameter consumes one of params in
// order.
func (ex *executor) executeMethod(obj any, methodName string, params []string) error {
	m := reflect.ValueOf(obj).MethodByName(methodName)
	if !m.IsValid() {
		return fmt.Errorf("action '%s' not found", methodName)
	}

	methodType := m.Type()
	if methodType.NumOut() != 1 || methodType.Out(0) != errorType {
		return fmt.Errorf("action '%s' is not an assertion", methodName)
	}

	wanted := 0
	for i := 0; i < methodType.NumIn(); i++ {
		if methodType.In(i) != driverType {
			wanted++
		}
	}
	if wanted != len(params) {
		return fmt.Errorf("action '%s' expects %d parameters, got %d", methodName, wanted, len(params))
	}

	args := make([]reflect.Value, methodType.NumIn())
	next := 0
	for i := 0; i < methodType.NumIn(); i++ {
		paramType := methodType.In(i)
		if paramType == driverType {
			args[i] = reflect.ValueOf(ex.session)
			continue
		}
		value, err := ex.convertToType(params[next], paramType)
		if err != nil {
			return fmt.Errorf("parameter %d of '%s': %w", next+1, methodName, err)
		}
		args[i] = value
		next++
	}

	log.Debugf("execute method: %s", methodName)
	results := m.Call(args)
	if err, _ := results[0].Interface().(error); err != nil {
		return err
	}
	return nil
}

// convertToType converts string input to the specified type. Elements are
// resolved from the page by dotted path at call time.
func (ex *executor) convertToType(input string, targetType reflect.Type) (reflect.Value, error) {
	switch targetType {
	case elementType:
		if ex.page == nil {
			return reflect.Value{}, fmt.Errorf("cannot resolve %q without a page", input)
		}
		el, err := ex.page.Resolve(input)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(el), nil
	case pointType:
		p, err := browser.ParsePoint(input)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(p), nil
	}

	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(input).Convert(targetType), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert to integer: %w", err)
		}
		return reflect.ValueOf(val).Convert(targetType), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert to unsigned integer: %w", err)
		}
		return reflect.ValueOf(val).Convert(targetType), nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert to float: %w", err)
		}
		return reflect.ValueOf(val).Convert(targetType), nil

	case reflect.Bool:
		val, err := strconv.ParseBool(input)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert to boolean: %w", err)
		}
		return reflect.ValueOf(val), nil

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %s", targetType.String())
	}
}
