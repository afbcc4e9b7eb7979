package handlers

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Tools serves the utility commands. Weather and URL shortening lean
// on free public endpoints through the shared HTTP client.
func Tools(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "tools":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryTools)
		return r, nil
	case "calc":
		return calculate(strings.Join(args, " "))
	case "weather":
		return weather(ctx, strings.Join(args, " "), bctx.HTTP)
	case "shorten":
		return shorten(ctx, args[0], bctx.HTTP)
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "tools: unrouted command %q", d.Canonical)
	}
}

func calculate(expr string) (reply.Reply, error) {
	p := &exprParser{input: strings.ReplaceAll(expr, " ", "")}
	result, err := p.parse()
	if err != nil {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Could not evaluate that.\nUse numbers with + - * / ^ sqrt() and parentheses, e.g. !calc (2+3)*4")
	}
	return reply.Textf("🔢 %s = *%s*", expr, strconv.FormatFloat(result, 'f', -1, 64)), nil
}

// exprParser is a recursive-descent evaluator for basic arithmetic.
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parse() (float64, error) {
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("trailing input at %d", p.pos)
	}
	return v, nil
}

func (p *exprParser) sum() (float64, error) {
	v, err := p.product()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		rhs, err := p.product()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (p *exprParser) product() (float64, error) {
	v, err := p.power()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		rhs, err := p.power()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		}
	}
	return v, nil
}

// power is right-associative: 2^3^2 is 2^(3^2).
func (p *exprParser) power() (float64, error) {
	v, err := p.atom()
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.input) && p.input[p.pos] == '^' {
		p.pos++
		exp, err := p.power()
		if err != nil {
			return 0, err
		}
		return math.Pow(v, exp), nil
	}
	return v, nil
}

func (p *exprParser) atom() (float64, error) {
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	if strings.HasPrefix(p.input[p.pos:], "sqrt(") {
		p.pos += len("sqrt")
		v, err := p.atom() // the parenthesized argument
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, fmt.Errorf("sqrt of negative")
		}
		return math.Sqrt(v), nil
	}
	if p.input[p.pos] == '(' {
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("missing close paren")
		}
		p.pos++
		return v, nil
	}
	if p.input[p.pos] == '-' {
		p.pos++
		v, err := p.atom()
		return -v, err
	}
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at %d", start)
	}
	return strconv.ParseFloat(p.input[start:p.pos], 64)
}

func weather(ctx context.Context, location string, client *http.Client) (reply.Reply, error) {
	reqURL := "https://wttr.in/" + url.PathEscape(location) + "?format=3"
	body, err := fetchText(ctx, client, reqURL)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "weather lookup", err)
	}
	return reply.Textf("🌤️ %s", strings.TrimSpace(body)), nil
}

func shorten(ctx context.Context, longURL string, client *http.Client) (reply.Reply, error) {
	if !strings.HasPrefix(longURL, "http://") && !strings.HasPrefix(longURL, "https://") {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "That doesn't look like a URL. Include http:// or https://")
	}
	reqURL := "https://tinyurl.com/api-create.php?url=" + url.QueryEscape(longURL)
	short, err := fetchText(ctx, client, reqURL)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "shorten url", err)
	}
	return reply.Textf("🔗 Short link: %s", strings.TrimSpace(short)), nil
}

func fetchText(ctx context.Context, client *http.Client, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
