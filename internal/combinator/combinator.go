// Package combinator implements the generic parser combinator
// framework spec'd in Atma §4.1: combinators are plain functions from
// the remaining input to a Success or a Failure, the input is never
// mutated, and a failure's cause chain is built by the combinators
// (Context, Many1, BracketedList) or parsers that wrap an inner failure.
package combinator

// Span records the byte offsets of the input a combinator consumed.
type Span struct {
	Start, End int
}

// Success is the positive result of running a Parser: the decoded
// value, the span of input it came from, and the unconsumed remainder.
type Success[T any] struct {
	Value T
	Token Span
	Rest  string
}

// Failure is the negative result of running a Parser. Source chains
// the inner failure that a wrapping parser (Context, Many1,
// BracketedList, or a caller building its own Failure) reports as the
// cause; a failure with no wrapped cause leaves Source nil.
type Failure struct {
	Ctx      string
	Expected string
	Source   *Failure
	Rest     string
}

func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}
	msg := "expected " + f.Expected
	if f.Ctx != "" {
		msg = f.Ctx + ": " + msg
	}
	return msg
}

// Parser consumes input without mutating it; on failure the caller's
// saved slice (the `input` argument) is still valid for backtracking,
// since Parser never advances a shared cursor.
type Parser[T any] func(input string) (Success[T], *Failure)

// Map transforms a successful value, leaving the span and remainder
// untouched.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(input string) (Success[B], *Failure) {
		sa, err := p(input)
		if err != nil {
			return Success[B]{}, err
		}
		return Success[B]{Value: f(sa.Value), Token: sa.Token, Rest: sa.Rest}, nil
	}
}

// TryMap transforms a successful value, allowing the transform itself
// to fail (e.g. an integer literal overflowing its target width).
func TryMap[A, B any](p Parser[A], name string, f func(A) (B, error)) Parser[B] {
	return func(input string) (Success[B], *Failure) {
		sa, err := p(input)
		if err != nil {
			return Success[B]{}, err
		}
		b, ferr := f(sa.Value)
		if ferr != nil {
			return Success[B]{}, &Failure{Expected: name + ": " + ferr.Error(), Rest: input}
		}
		return Success[B]{Value: b, Token: sa.Token, Rest: sa.Rest}, nil
	}
}

// Context labels failures that propagate out of p with name, chaining
// the original failure as the new Failure's Source.
func Context[T any](name string, p Parser[T]) Parser[T] {
	return func(input string) (Success[T], *Failure) {
		s, err := p(input)
		if err != nil {
			return Success[T]{}, &Failure{Ctx: name, Expected: err.Expected, Source: err, Rest: input}
		}
		return s, nil
	}
}

// Seq2 runs a then b in sequence, combining their values with f.
func Seq2[A, B, C any](a Parser[A], b Parser[B], f func(A, B) C) Parser[C] {
	return func(input string) (Success[C], *Failure) {
		sa, err := a(input)
		if err != nil {
			return Success[C]{}, err
		}
		sb, err := b(sa.Rest)
		if err != nil {
			return Success[C]{}, err
		}
		return Success[C]{
			Value: f(sa.Value, sb.Value),
			Token: Span{Start: sa.Token.Start, End: sb.Token.End},
			Rest:  sb.Rest,
		}, nil
	}
}

// Seq3 runs three parsers in sequence.
func Seq3[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], f func(A, B, C) D) Parser[D] {
	return func(input string) (Success[D], *Failure) {
		sa, err := a(input)
		if err != nil {
			return Success[D]{}, err
		}
		sb, err := b(sa.Rest)
		if err != nil {
			return Success[D]{}, err
		}
		sc, err := c(sb.Rest)
		if err != nil {
			return Success[D]{}, err
		}
		return Success[D]{
			Value: f(sa.Value, sb.Value, sc.Value),
			Token: Span{Start: sa.Token.Start, End: sc.Token.End},
			Rest:  sc.Rest,
		}, nil
	}
}

// Or tries each parser against the ORIGINAL input in order, returning
// the first success. Because Parser never mutates input, every
// alternative gets the caller's pristine slice for backtracking.
func Or[T any](parsers ...Parser[T]) Parser[T] {
	return func(input string) (Success[T], *Failure) {
		var last *Failure
		for _, p := range parsers {
			s, err := p(input)
			if err == nil {
				return s, nil
			}
			last = err
		}
		return Success[T]{}, last
	}
}

// Opt makes p optional, returning zero and no error when it fails.
func Opt[T any](p Parser[T]) Parser[Option[T]] {
	return func(input string) (Success[Option[T]], *Failure) {
		s, err := p(input)
		if err != nil {
			return Success[Option[T]]{Value: Option[T]{}, Token: Span{}, Rest: input}, nil
		}
		return Success[Option[T]]{Value: Option[T]{Present: true, Value: s.Value}, Token: s.Token, Rest: s.Rest}, nil
	}
}

// Option is the value produced by Opt.
type Option[T any] struct {
	Present bool
	Value   T
}

// Many applies p zero or more times.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(input string) (Success[[]T], *Failure) {
		var values []T
		rest := input
		start := 0
		for {
			s, err := p(rest)
			if err != nil {
				break
			}
			values = append(values, s.Value)
			rest = s.Rest
		}
		end := len(input) - len(rest)
		return Success[[]T]{Value: values, Token: Span{Start: start, End: end}, Rest: rest}, nil
	}
}

// Many1 applies p one or more times, failing if it never matches.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(input string) (Success[[]T], *Failure) {
		first, err := p(input)
		if err != nil {
			return Success[[]T]{}, &Failure{Expected: "at least one occurrence", Source: err, Rest: input}
		}
		rest, _ := Many(p)(first.Rest)
		values := append([]T{first.Value}, rest.Value...)
		return Success[[]T]{Value: values, Token: Span{Start: 0, End: len(input) - len(rest.Rest)}, Rest: rest.Rest}, nil
	}
}

// SepBy parses zero or more occurrences of p separated by sep,
// discarding the separator's value.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(input string) (Success[[]T], *Failure) {
		first, err := p(input)
		if err != nil {
			return Success[[]T]{Value: nil, Token: Span{}, Rest: input}, nil
		}
		values := []T{first.Value}
		rest := first.Rest
		for {
			afterSep, err := sep(rest)
			if err != nil {
				break
			}
			next, err := p(afterSep.Rest)
			if err != nil {
				break
			}
			values = append(values, next.Value)
			rest = next.Rest
		}
		return Success[[]T]{Value: values, Token: Span{Start: 0, End: len(input) - len(rest)}, Rest: rest}, nil
	}
}

// Lazy defers construction of p until first use, allowing recursive
// grammars (InsertExpr refers to itself through Ramp's BinaryExpr
// argument) without an initialization cycle.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var p Parser[T]
	return func(input string) (Success[T], *Failure) {
		if p == nil {
			p = build()
		}
		return p(input)
	}
}
