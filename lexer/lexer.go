// SPDX-License-Identifier: MIT
package lexer

// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go
// REF: https://www.haskell.org/onlinereport/haskell2010/haskellch10.html#x17-17800010.3

import (
	"context"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// mode is a state of the Lexer's state machine.
	mode int

	// Lexer converts layout sensitive source text into a stream of positioned Tokens.
	//
	// Tokens are produced on demand; a Lexer is single use & not safe for concurrent use, Lex
	// excepted.
	Lexer struct {
		debug  bool
		logger logrus.FieldLogger

		// label names the synthetic outermost block.
		label string

		// source is the input source.
		source io.RuneReader
		// buffer holds sourced runes that are yet to be consumed, the cursor being at index 0.
		buffer []rune
		// sizes holds the encoded byte width of each buffered rune.
		sizes []int
		// drained is set once the source is exhausted.
		drained bool

		pos   Position
		stack layoutStack
		mode  mode

		// pending holds produced Tokens awaiting Next.
		pending []Token

		// c is a channel for communicating lexed Tokens.
		c chan Token
	}

	// rule is a classification step, apply reports whether it matched the input at the cursor.
	rule struct {
		name  string
		apply func(l *Lexer, head rune) bool
	}
)

const (
	modeStart mode = iota
	modeSkipWhitespace
	modeResolveLayout
	modePushLayout
	modeClassify
	modeDrain
	modeDone
)

const defBufferSize = 64

var modeNames = [...]string{
	modeStart:          "start",
	modeSkipWhitespace: "skip-whitespace",
	modeResolveLayout:  "resolve-layout",
	modePushLayout:     "push-layout",
	modeClassify:       "classify",
	modeDrain:          "drain",
	modeDone:           "done",
}

// rules are evaluated in order, the first match wins.
//
// "->" precedes the symboly rule since '-' is a symboly rune; the numeric rule always matches,
// emitting an Err when nothing else did.
var rules = [...]rule{
	{"delimiter", (*Lexer).lexDelimiter},
	{"colon", (*Lexer).lexColon},
	{"at", (*Lexer).lexAt},
	{"underscore", (*Lexer).lexUnderscore},
	{"pipe", (*Lexer).lexPipe},
	{"equals", (*Lexer).lexEquals},
	{"arrow", (*Lexer).lexArrow},
	{"text", (*Lexer).lexText},
	{"backticks", (*Lexer).lexBackticks},
	{"wordy", (*Lexer).lexWordyID},
	{"symboly", (*Lexer).lexSymbolyID},
	{"keyword", (*Lexer).lexKeyword},
	{"numeric", (*Lexer).lexNumeric},
}

func (m mode) String() string { return modeNames[m] }

// New creates a Lexer for the source configured by WithSource; label names the outermost block.
func New(label string, opts ...Option) *Lexer {
	l := &Lexer{
		label:  label,
		logger: logrus.New(),

		source: strings.NewReader(""),
		buffer: make([]rune, 0, defBufferSize),
		sizes:  make([]int, 0, defBufferSize),

		pos: Start,
		c:   make(chan Token, defBufferSize),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Tokenize lexes src eagerly.
//
// The result ends with the Closes draining the layout, or with a single Err token.
func Tokenize(label, src string, opts ...Option) (tokens []Token) {
	l := New(label, append(opts, WithSource(strings.NewReader(src)))...)

	for {
		t, ok := l.Next()
		if !ok {
			return
		}
		tokens = append(tokens, t)
	}
}

// Label obtains the outermost block's label.
func (l *Lexer) Label() string { return l.label }

// Depth obtains the number of layout blocks opened, less those closed, by the Tokens returned
// so far.
func (l *Lexer) Depth() (depth int) {
	depth = len(l.stack)
	if l.mode == modePushLayout {
		// Opened, awaiting its anchor.
		depth++
	}

	// Layout is updated ahead of queued Tokens.
	for index := range l.pending {
		switch l.pending[index].ID {
		case TokenOpen:
			depth--
		case TokenClose:
			depth++
		}
	}

	return
}

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Next produces the next Token, ok is false once the stream has ended.
func (l *Lexer) Next() (t Token, ok bool) {
	for len(l.pending) < 1 {
		if l.mode == modeDone {
			return
		}
		l.step()
	}

	t, l.pending = l.pending[0], l.pending[1:]
	ok = true

	return
}

// Lex sends the Tokens over the Lexer's channel, closing it at the end of the stream or on
// context cancellation.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for {
		t, ok := l.Next()
		if !ok {
			return
		}

		select {
		case <-ctx.Done():
			return
		case l.c <- t:
		}
	}
}

// Item return a lexed Token from the channel fed by Lex.
func (l *Lexer) Item() (t Token, ok bool) {
	t, ok = <-l.c
	return
}

// step executes the current mode once.
func (l *Lexer) step() {
	switch l.mode {
	case modeStart:
		l.emit(TokenOpen, l.label, l.pos, l.pos)
		l.mode = modePushLayout

	case modeSkipWhitespace:
		newline := l.skipWhitespace()
		switch {
		case l.exhausted():
			l.mode = modeDrain
		case newline:
			l.mode = modeResolveLayout
		default:
			l.mode = modeClassify
		}

	case modeResolveLayout:
		l.resolveLayout()

	case modePushLayout:
		// The first line of a new block is never a continuation, resolution is skipped.
		l.skipWhitespace()
		l.stack.push(l.pos.Column)
		l.traceLayout("push")
		l.mode = modeClassify

	case modeClassify:
		if l.exhausted() {
			l.mode = modeDrain
			return
		}
		l.classify()

	case modeDrain:
		if !l.stack.pop() {
			l.mode = modeDone
			return
		}
		l.emit(TokenClose, "", l.pos, l.pos)

	case modeDone:
	}
}

// resolveLayout compares the first token of a line against the top anchor.
func (l *Lexer) resolveLayout() {
	switch l.stack.resolve(l.pos.Column) {
	case layoutSemi:
		l.emit(TokenSemi, "", l.pos, l.pos)
		l.mode = modeClassify
	case layoutContinue:
		l.mode = modeClassify
	case layoutClose:
		l.stack.pop()
		l.emit(TokenClose, "", l.pos, l.pos)
		l.traceLayout("close")
	}
}

// classify lexes one token at the cursor.
func (l *Lexer) classify() {
	head, _ := l.at(0)

	for index := range rules {
		if rules[index].apply(l, head) {
			if l.debug {
				l.logger.WithFields(logrus.Fields{
					"rule": rules[index].name,
					"pos":  l.pos.String(),
					"next": l.mode.String(),
				}).Debug("lexer classify")
			}

			return
		}
	}
}

// skipWhitespace consumes whitespace & `--` comments, reporting whether a newline was crossed.
func (l *Lexer) skipWhitespace() (newline bool) {
	for {
		r, ok := l.at(0)
		if !ok {
			return
		}

		switch {
		case isWhitespace(r):
			newline = newline || r == '\n'
			l.consume(1)
		case r == '-' && l.is(1, '-'):
			n := spanWhile(l, 0, isNotNewline)
			if _, ok := l.at(n); ok {
				// Include the newline.
				n++
				newline = true
			}
			l.consume(n)
		default:
			return
		}
	}
}

func (l *Lexer) lexDelimiter(head rune) bool {
	if !isDelimiter(head) {
		return false
	}
	l.accept(TokenReserved, string(head), 1, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexColon(head rune) bool {
	if head != ':' || !l.followedByWordStart() {
		return false
	}
	l.accept(TokenOpen, ":", 1, modePushLayout)

	return true
}

func (l *Lexer) lexAt(head rune) bool {
	if head != '@' {
		return false
	}
	l.accept(TokenReserved, "@", 1, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexUnderscore(head rune) bool {
	if head != '_' || !hasSepAt(l, 1) {
		return false
	}
	l.accept(TokenReserved, "_", 1, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexPipe(head rune) bool {
	if head != '|' || !l.followedByWordStart() {
		return false
	}
	l.accept(TokenReserved, "|", 1, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexEquals(head rune) bool {
	if head != '=' || !l.followedByWordStart() {
		return false
	}
	l.accept(TokenOpen, "=", 1, modePushLayout)

	return true
}

func (l *Lexer) lexArrow(head rune) bool {
	if head != '-' || !l.is(1, '>') || !hasSepAt(l, 2) {
		return false
	}
	l.accept(TokenReserved, "->", 2, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexText(head rune) bool {
	if head != '"' {
		return false
	}

	n, contents, kind := scanText(l, 0)
	if kind != 0 {
		l.fail(kind, contents, n)
		return true
	}
	l.accept(TokenTextual, contents, n, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexBackticks(head rune) bool {
	if head != '`' {
		return false
	}

	n, id, kind := scanBackticks(l, 0)
	if kind != 0 {
		l.fail(kind, id, n)
		return true
	}
	l.accept(TokenBackticks, id, n, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexWordyID(_ rune) bool {
	n, kind := scanWordyID(l, 0)
	if kind != 0 {
		return false
	}
	l.accept(TokenWordyID, text(l, 0, n), n, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexSymbolyID(_ rune) bool {
	n, kind := scanSymbolyID(l, 0)
	if kind != 0 {
		return false
	}
	l.accept(TokenSymbolyID, text(l, 0, n), n, modeSkipWhitespace)

	return true
}

func (l *Lexer) lexKeyword(_ rune) bool {
	n, ok := scanKeyword(l, 0)
	if !ok {
		return false
	}

	keyword := text(l, 0, n)
	if !layoutKeywords.has(keyword) {
		l.accept(TokenReserved, keyword, n, modeSkipWhitespace)
		return true
	}

	// Close the enclosing block, e.g. the one opened by `if` for `then`.
	if layoutEndKeywords.has(keyword) && l.stack.pop() {
		l.emit(TokenClose, "", l.pos, l.pos)
		l.traceLayout("close")
	}
	l.accept(TokenOpen, keyword, n, modePushLayout)

	return true
}

func (l *Lexer) lexNumeric(_ rune) bool {
	n, kind := scanNumeric(l, 0)

	switch kind {
	case 0:
		l.accept(TokenNumeric, text(l, 0, n), n, modeSkipWhitespace)
	case MissingFractional:
		l.fail(kind, text(l, 0, n), n)
	default:
		// A symboly run lacking a trailing separator is reported as such.
		if n, _ = scanSymbolyID(l, 0); n > 0 {
			l.fail(InvalidSymbolyID, text(l, 0, n), n)
			break
		}

		n = spanWhile(l, 0, isNotSeparator)
		l.fail(UnknownLexeme, text(l, 0, n), n)
	}

	return true
}

// accept consumes n runes as a Token, continuing with the next mode.
func (l *Lexer) accept(id TokenID, val string, n int, next mode) {
	start := l.pos
	l.consume(n)
	l.emit(id, val, start, l.pos)
	l.mode = next
}

// fail consumes n runes as a terminal Err Token.
func (l *Lexer) fail(kind ErrorKind, val string, n int) {
	start := l.pos
	l.consume(n)

	err := &Error{Kind: kind, Text: val, Pos: start}
	if l.debug {
		l.logger.WithError(err).Debug("lexer fail")
	}

	l.pending = append(l.pending, Token{ID: TokenErr, Val: val, Err: err, Start: start, End: l.pos})
	l.mode = modeDone
}

// emit queues a Token for Next.
func (l *Lexer) emit(id TokenID, val string, start, end Position) {
	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debugf("lexer emit: %s %q %s-%s", id, val, start, end)
	}

	l.pending = append(l.pending, Token{ID: id, Val: val, Start: start, End: end})
}

func (l *Lexer) traceLayout(event string) {
	if !l.debug {
		return
	}

	l.logger.WithFields(logrus.Fields{
		"event": event,
		"pos":   l.pos.String(),
	}).Debugf("layout stack: %s", spew.Sdump([]int(l.stack)))
}

// followedByWordStart reports whether the rune past the cursor is whitespace or alphanumeric.
func (l *Lexer) followedByWordStart() bool {
	r, ok := l.at(1)
	return ok && (isWhitespace(r) || isAlphaNum(r))
}

// is reports whether the rune i positions past the cursor is want.
func (l *Lexer) is(i int, want rune) bool {
	r, ok := l.at(i)
	return ok && r == want
}

func (l *Lexer) exhausted() bool {
	_, ok := l.at(0)
	return !ok
}

// at obtains the rune i positions past the cursor, sourcing runes as required.
func (l *Lexer) at(i int) (r rune, ok bool) {
	for i >= len(l.buffer) {
		if l.drained || l.fill(i+1-len(l.buffer)) < 1 {
			return
		}
	}

	return l.buffer[i], true
}

func (l *Lexer) slice(from, to int) []rune { return l.buffer[from:to] }

// consume moves the cursor & position over n runes.
func (l *Lexer) consume(n int) {
	if n < 1 {
		return
	}
	l.at(n - 1)

	l.pos = l.pos.advanceRunes(l.buffer[:n], l.sizes[:n])
	l.buffer, l.sizes = l.buffer[n:], l.sizes[n:]
}

// fill sources at least amount runes from the source reader.
func (l *Lexer) fill(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	for ; sourced < amount; sourced++ {
		r, size, err := l.source.ReadRune()
		if err == nil {
			l.buffer, l.sizes = append(l.buffer, r), append(l.sizes, size)
			continue
		}

		l.drained = true
		if err != io.EOF {
			l.logger.WithError(err).Warn("lexer source read failed, ending input")
		}

		break
	}

	return
}

func isNotNewline(r rune) bool { return r != '\n' }
