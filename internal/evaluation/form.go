package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vrajamarii/internal/models"
)

// Store persists a submitted evaluation. Implementations upsert by user, so a
// retried submission replaces the row instead of adding one.
type Store interface {
	UpsertEvaluation(ctx context.Context, rec *models.EvaluationRecord) error
}

// Form is the step-gated evaluation workflow of one user. It moves through
// the four steps and ends in Submitted, after which it is read-only. Form is
// not safe for concurrent use; callers hold one form per user.
type Form struct {
	UserID      uuid.UUID         `json:"user_id"`
	Step        int               `json:"step"`
	Values      Values            `json:"values"`
	Errors      map[string]Reason `json:"errors,omitempty"`
	Submitted   bool              `json:"submitted"`
	SubmitError string            `json:"submit_error,omitempty"`

	submitting bool
}

// NewForm starts a workflow for userID on the first step. Schema defaults are
// applied first, then seed (for example the names already on the profile).
func NewForm(userID uuid.UUID, seed Values) (*Form, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	f := &Form{
		UserID: userID,
		Values: make(Values),
		Errors: make(map[string]Reason),
	}
	for _, field := range fields {
		if field.Default != nil {
			f.Values[field.Name] = field.Default
		}
	}
	for name, raw := range seed {
		if err := f.Set(name, raw); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Set stores one value coming from the presentation layer. A blank value
// unsets the field. When name governs a rule that stops applying, the
// dependent's value is dropped so a stale answer cannot resurface.
func (f *Form) Set(name string, raw any) error {
	if f.Submitted {
		return ErrReadOnly
	}
	field, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.Errors == nil {
		f.Errors = make(map[string]Reason)
	}
	if f.Values == nil {
		f.Values = make(Values)
	}

	val, set, err := coerce(field, raw)
	if err != nil {
		delete(f.Values, name)
		f.Errors[name] = ReasonInvalid
		f.prune(rulesGovernedBy(name))
		return &FieldError{Field: name, Reason: ReasonInvalid}
	}
	delete(f.Errors, name)
	if set {
		f.Values[name] = val
	} else {
		delete(f.Values, name)
	}

	f.prune(rulesGovernedBy(name))
	return nil
}

// prune drops the value and error of every dependent in rs whose rule the
// current values no longer trigger.
func (f *Form) prune(rs []Rule) {
	if len(rs) == 0 {
		return
	}
	active := Resolve(f.Values)
	for _, r := range rs {
		if !active.IsActive(r.Dependent) {
			delete(f.Values, r.Dependent)
			delete(f.Errors, r.Dependent)
		}
	}
}

// Apply sets several values at once. Unknown names reject the whole batch
// before anything changes; coercion failures are collected per field. Once
// the batch is in, dependents left inactive are dropped whatever order the
// entries were set in.
func (f *Form) Apply(changes map[string]any) error {
	if f.Submitted {
		return ErrReadOnly
	}
	for name := range changes {
		if _, ok := Lookup(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	var errs ValidationErrors
	for name, raw := range changes {
		if err := f.Set(name, raw); err != nil {
			if fe, ok := err.(*FieldError); ok {
				errs = append(errs, fe)
				continue
			}
			return err
		}
	}
	f.prune(rules)
	return errs.orNil()
}

// Advance validates the current step and moves to the next one. On failure
// the form stays put and the failing fields are marked.
func (f *Form) Advance() error {
	if f.Submitted {
		return ErrReadOnly
	}
	if f.Step >= StepCount-1 {
		return ErrNoNextStep
	}
	names, err := FieldsForStep(f.Step)
	if err != nil {
		return err
	}

	errs := Validate(f.Values, names)
	f.mark(names, errs)
	if len(errs) > 0 {
		return errs
	}
	f.Step++
	return nil
}

// Retreat moves to the previous step without validating.
func (f *Form) Retreat() {
	if f.Submitted || f.Step == 0 {
		return
	}
	f.Step--
}

// ClearSubsection answers "no" to every question of a medical history
// subsection and re-validates it.
func (f *Form) ClearSubsection(name string) error {
	if f.Submitted {
		return ErrReadOnly
	}
	members, err := SubsectionFields(name)
	if err != nil {
		return err
	}
	for _, field := range members {
		if err := f.Set(field, No); err != nil {
			return err
		}
	}

	errs := Validate(f.Values, members)
	f.mark(members, errs)
	return errs.orNil()
}

// Submit validates the whole form once more, converts it and hands it to
// store. A store failure keeps every value and leaves the form on the last
// step so the user can retry.
func (f *Form) Submit(ctx context.Context, store Store) error {
	switch {
	case f.Submitted:
		return ErrReadOnly
	case f.UserID == uuid.Nil:
		return ErrNotAuthenticated
	case f.Step != StepCount-1:
		return ErrNotFinalStep
	case f.submitting:
		return ErrSubmissionInFlight
	}

	errs := ValidateAll(f.Values)
	f.mark(FieldNames(), errs)
	if len(errs) > 0 {
		return errs
	}

	rec, err := ToRecord(f.UserID, f.Values)
	if err != nil {
		return err
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	if err := store.UpsertEvaluation(ctx, rec); err != nil {
		f.SubmitError = ErrSubmissionFailed.Error()
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	f.SubmitError = ""
	f.Submitted = true
	return nil
}

func (f *Form) mark(names []string, errs ValidationErrors) {
	if f.Errors == nil {
		f.Errors = make(map[string]Reason)
	}
	for _, name := range names {
		delete(f.Errors, name)
	}
	for _, e := range errs {
		f.Errors[e.Field] = e.Reason
	}
}

// FieldView is what the presentation layer needs to render one field.
type FieldView struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Step       int      `json:"step"`
	Subsection string   `json:"subsection,omitempty"`
	Value      any      `json:"value"`
	Required   bool     `json:"required"`
	Active     bool     `json:"active"`
	Error      Reason   `json:"error,omitempty"`
	Options    []string `json:"options,omitempty"`
	Min        *int     `json:"min,omitempty"`
	Max        *int     `json:"max,omitempty"`
}

// View is the renderable state of a form.
type View struct {
	Step        int         `json:"step"`
	StepName    string      `json:"step_name"`
	StepCount   int         `json:"step_count"`
	Submitted   bool        `json:"submitted"`
	SubmitError string      `json:"submit_error,omitempty"`
	Subsections []string    `json:"subsections"`
	Fields      []FieldView `json:"fields"`
}

// View reports every field with its value, validity and whether the current
// answers make it relevant.
func (f *Form) View() View {
	active := Resolve(f.Values)
	out := View{
		Step:        f.Step,
		StepName:    StepName(f.Step),
		StepCount:   StepCount,
		Submitted:   f.Submitted,
		SubmitError: f.SubmitError,
		Subsections: Subsections(),
		Fields:      make([]FieldView, 0, len(fields)),
	}
	for _, field := range fields {
		fv := FieldView{
			Name:       field.Name,
			Kind:       field.Kind.String(),
			Step:       StepOf(field.Name),
			Subsection: subsectionOf[field.Name],
			Value:      f.Values[field.Name],
			Required:   active.IsRequired(field.Name),
			Active:     active.IsActive(field.Name),
			Error:      f.Errors[field.Name],
			Options:    field.Options,
		}
		if field.Bounded() {
			min, max := field.Min, field.Max
			fv.Min, fv.Max = &min, &max
		}
		out.Fields = append(out.Fields, fv)
	}
	return out
}
