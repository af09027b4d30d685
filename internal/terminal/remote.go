package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/quocvuong92/operator-console/internal/logging"
)

var (
	errQuestionRequired = errors.New("You must ask a question.")
	errURLRequired      = errors.New("URL must be provided.")
	errNoGateway        = errors.New("no gateway configured")
)

// call runs fn with the wait hook active
func (s *Session) call(ctx context.Context, label string, fn func(context.Context, Remote) (string, error)) (string, error) {
	if s.remote == nil {
		return "", errNoGateway
	}
	if s.wait != nil {
		stop := s.wait(label)
		defer stop()
	}
	out, err := fn(ctx, s.remote)
	if err != nil {
		s.logger.Debug("Remote program failed", logging.Fields{
			"program": label,
			"error":   err.Error(),
		})
	}
	return out, err
}

func (s *Session) ask(ctx context.Context, raw string) {
	const errPrefix = "> ORACLE ERROR: "
	s.renderf(StyleInfo, "Contacting the Oracle...")

	question := stripQuotes(raw)
	if question == "" {
		s.errorf("%s%s", errPrefix, errQuestionRequired)
		return
	}

	answer, err := s.call(ctx, "ask", func(ctx context.Context, r Remote) (string, error) {
		return r.Ask(ctx, question)
	})
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}
	s.render(Line{Text: answer, Style: StyleResponse})
}

func (s *Session) findExit(ctx context.Context, raw string) {
	const errPrefix = "> ERROR: "
	s.renderf(StyleInfo, "Signal confirmed. Tracing the exit path...")

	url := strings.TrimSpace(raw)
	if url == "" {
		s.errorf("%s%s", errPrefix, errURLRequired)
		return
	}

	summary, err := s.call(ctx, "find_exit", func(ctx context.Context, r Remote) (string, error) {
		return r.FindExit(ctx, url)
	})
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}
	s.render(Line{Text: summary, Style: StyleResponse})
}

func (s *Session) generateCode(ctx context.Context, raw string) {
	const errPrefix = "> ERROR: "
	s.renderf(StyleInfo, "Accessing the Architect's toolbox...")

	args, err := ParseCodeArgs(raw)
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}

	code, err := s.call(ctx, "generate_code", func(ctx context.Context, r Remote) (string, error) {
		return r.GenerateCode(ctx, args.Language, args.Task)
	})
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}
	s.render(Line{Text: code, Style: StyleResponse, Code: true, Lang: args.Language})
}

func (s *Session) fabricateData(ctx context.Context, raw string) {
	const errPrefix = "> FABRICATION ERROR: "
	s.renderf(StyleInfo, "Accessing data fabrication subroutines...")

	args, err := ParseFabricateArgs(raw)
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}

	data, err := s.call(ctx, "fabricate_data", func(ctx context.Context, r Remote) (string, error) {
		return r.FabricateData(ctx, args.Count, json.RawMessage(args.Schema), args.Format)
	})
	if err != nil {
		s.errorf("%s%s", errPrefix, err)
		return
	}

	lang := args.Format
	if lang == "" {
		lang = "json"
	}
	s.render(Line{Text: data, Style: StyleResponse, Code: true, Lang: lang})
}
