package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core"
)

// Actions recognized by the dispatcher.
const (
	ActionSessionStats      = "getSessionStats"
	ActionEpicStats         = "getEpicStats"
	ActionCalendarData      = "getCalendarData"
	ActionLeaderboard       = "getLeaderboard"
	ActionStudentStats      = "getStudentStats"
	ActionStudentStreaks    = "getStudentStreaks"
	ActionPublicLeaderboard = "getPublicLeaderboard"
	ActionDropOutRadar      = "getDropOutRadar"
)

type (
	// Request is the single call surface: an action name plus its params.
	Request struct {
		Action string          `json:"action"`
		Params json.RawMessage `json:"params"`
	}

	Metadata struct {
		RequestID string    `json:"requestId"`
		Action    string    `json:"action,omitempty"`
		Timestamp time.Time `json:"timestamp"`
		Took      int64     `json:"tookMs"`
	}

	// Response either fully succeeds with a complete data payload or fully
	// fails with a null data payload — never partially computed.
	Response struct {
		Success  bool        `json:"success"`
		Data     interface{} `json:"data"`
		Error    null.String `json:"error"`
		Metadata Metadata    `json:"metadata"`

		status int
	}

	Dispatcher struct {
		svc Service
	}

	// payload is any action's params type.
	payload interface {
		Validate() error
	}
)

func NewDispatcher(svc Service) *Dispatcher {
	InitValidators()
	return &Dispatcher{svc: svc}
}

// HTTPStatus maps the outcome onto a status code for HTTP transports:
// 200 on success, 400 on validation failures and unknown actions, 500 when
// the record store failed.
func (r Response) HTTPStatus() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Dispatch routes one request to its calculator. The action set is closed:
// unknown actions are rejected at this boundary, and params are validated
// before any data access.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	started := time.Now().UTC()
	meta := Metadata{
		RequestID: uuid.New().String(),
		Action:    req.Action,
		Timestamp: started,
	}
	done := func(resp Response) Response {
		resp.Metadata = meta
		resp.Metadata.Took = time.Since(started).Milliseconds()
		return resp
	}

	if core.CleanString(req.Action) == "" {
		return done(failure(http.StatusBadRequest, errors.New("action is required")))
	}
	if len(req.Params) == 0 || string(req.Params) == "null" {
		return done(failure(http.StatusBadRequest, errors.New("params is required")))
	}

	var (
		data interface{}
		err  error
	)
	switch req.Action {
	case ActionSessionStats:
		p := new(SessionStatsRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.SessionStats(ctx, *p)
		}
	case ActionEpicStats:
		p := new(EpicStatsRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.EpicStats(ctx, *p)
		}
	case ActionCalendarData:
		p := new(CalendarRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.CalendarData(ctx, *p)
		}
	case ActionLeaderboard:
		p := new(LeaderboardRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.Leaderboard(ctx, *p)
		}
	case ActionPublicLeaderboard:
		p := new(LeaderboardRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.PublicLeaderboard(ctx, *p)
		}
	case ActionStudentStats:
		p := new(StudentStatsRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.StudentStats(ctx, *p)
		}
	case ActionStudentStreaks:
		p := new(StudentStreaksRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.StudentStreaks(ctx, *p)
		}
	case ActionDropOutRadar:
		p := new(DropOutRadarRequest)
		if err = d.decode(req.Params, p); err == nil {
			data, err = d.svc.DropOutRadar(ctx, *p)
		}
	default:
		return done(failure(http.StatusBadRequest, errors.Errorf("unrecognized action %q", req.Action)))
	}

	if err != nil {
		return done(failure(statusFor(err), err))
	}
	return done(Response{Success: true, Data: data})
}

func (d *Dispatcher) decode(raw json.RawMessage, p payload) error {
	if err := json.Unmarshal(raw, p); err != nil {
		return core.NewValidationError(errors.New("params do not match the requested action"))
	}
	return p.Validate()
}

func failure(status int, err error) Response {
	return Response{
		Success: false,
		Data:    nil,
		Error:   null.StringFrom(errMessage(err)),
		status:  status,
	}
}

// statusFor treats validation failures as client errors; anything else came
// out of the record store and is a server error.
func statusFor(err error) int {
	switch errors.Cause(err).(type) {
	case validator.ValidationErrors, *core.ValidationError:
		return http.StatusBadRequest
	}
	if errors.Cause(err) == ErrStudentNotFound {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errMessage renders errors verbatim for the caller; field errors are
// reported per field, translated.
func errMessage(err error) string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		msgs := make([]string, 0, len(origErr))
		for _, vErr := range origErr {
			msgs = append(msgs, vErr.Field()+": "+vErr.Translate(core.Translator))
		}
		sort.Strings(msgs)
		return strings.Join(msgs, "; ")
	case *core.ValidationError:
		if len(origErr.Fields) > 0 {
			msgs := make([]string, 0, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				msgs = append(msgs, fErr.Field+": "+fErr.Error)
			}
			sort.Strings(msgs)
			return strings.Join(msgs, "; ")
		}
		return origErr.Error()
	}
	return err.Error()
}
