// Package bind provides form bind and validation helpers for handlers
package bind

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	perr "telejoin/internal/platform/errors"
	"telejoin/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and form tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer form, then json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"form", "json"} {
				tag := fld.Tag.Get(key)
				if idx := strings.Index(tag, ","); idx >= 0 {
					tag = tag[:idx]
				}
				if tag != "" && tag != "-" {
					return tag
				}
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShortMax(v, trans)
		registerDMY(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// FormOptions controls multipart parsing
type FormOptions struct {
	MaxMemory int64 // bytes kept in memory before spilling file parts to disk, default 32MB
}

func defaultFormOptions() FormOptions { return FormOptions{MaxMemory: 32 << 20} }

// ParseForm fills the string fields of T tagged `form:"name"` from a
// multipart or urlencoded request, then validates T
// Values are kept as sent unless the tag carries the trim option, as in
// `form:"date,trim"`. Blank values leave *string fields nil
func ParseForm[T any](r *http.Request, opts ...FormOptions) (T, error) {
	var zero T
	o := defaultFormOptions()
	if len(opts) > 0 && opts[0].MaxMemory > 0 {
		o = opts[0]
	}
	if err := parse(r, o); err != nil {
		return zero, err
	}

	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("bind: %T is not a struct", dst)
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		name, opt, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		val := r.FormValue(name)
		if opt == "trim" {
			val = strings.TrimSpace(val)
		}
		fv := rv.Field(i)
		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(val)
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.String:
			if strings.TrimSpace(val) != "" {
				s := val
				fv.Set(reflect.ValueOf(&s))
			}
		default:
			return zero, perr.Internalf("bind: field %s has unsupported kind %s", f.Name, fv.Kind())
		}
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct validation and maps failures to a Validation error
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// File reads the uploaded file part named field, up to max bytes when max > 0
func File(r *http.Request, field string, max int64) ([]byte, string, error) {
	if err := parse(r, defaultFormOptions()); err != nil {
		return nil, "", err
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", perr.WithField(perr.Validationf("%s is required", field), field)
		}
		return nil, "", mapReadErr(err)
	}
	defer func() { _ = f.Close() }()

	if max > 0 && hdr.Size > max {
		return nil, "", perr.WithField(perr.TooLargef("%s exceeds %d bytes", field, max), field)
	}
	var src io.Reader = f
	if max > 0 {
		src = io.LimitReader(f, max+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, "", mapReadErr(err)
	}
	if max > 0 && int64(len(b)) > max {
		return nil, "", perr.WithField(perr.TooLargef("%s exceeds %d bytes", field, max), field)
	}
	return b, hdr.Filename, nil
}

// parse is idempotent; net/http keeps the parsed form on the request
func parse(r *http.Request, o FormOptions) error {
	if r.MultipartForm != nil || r.PostForm != nil {
		return nil
	}
	err := r.ParseMultipartForm(o.MaxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return mapReadErr(err)
	}
	return nil
}

func mapReadErr(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return perr.Wrapf(err, perr.ErrorCodeTooLarge, "request body exceeds %d bytes", mbe.Limit)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "invalid form")
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// custom tags and translations

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1} characters", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

// dmy accepts DD/MM/YYYY calendar dates
func registerDMY(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("dmy", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("02/01/2006", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterTranslation("dmy", trans,
		func(ut ut.Translator) error {
			return ut.Add("dmy", "{0} must be a date in DD/MM/YYYY format", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("dmy", fe.Field())
			return msg
		},
	)
}
