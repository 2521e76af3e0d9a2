package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ctx is the minimal test context: a cursor over a string plus a log of
// side effects, so assertions can check both control flow and ordering.
type ctx struct {
	s   string
	pos int
	log []string
}

func newCtx(s string) *ctx { return &ctx{s: s} }

func (c *ctx) record(what string) { c.log = append(c.log, what) }

func (c *ctx) eof() bool { return c.pos >= len(c.s) }

func (c *ctx) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.pos]
}

func (c *ctx) match(b byte) bool {
	if c.eof() || c.s[c.pos] != b {
		return false
	}
	c.pos++
	return true
}

func opCh(b byte) func(*ctx, *ValueSlot) bool {
	return func(c *ctx, slot *ValueSlot) bool {
		if c.match(b) {
			slot.Set(true, string(b))
			return true
		}
		return false
	}
}

func TestSequence_AllMustSucceedInOrder(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.Op(opCh('b'))
		b.Op(opCh('c'))
	})

	require.True(t, Run(ax, newCtx("abc")))
	require.False(t, Run(ax, newCtx("abx")))
	require.False(t, Run(ax, newCtx("xbc")))
}

func TestSequence_OptionalLeadingChildIsSkipped(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Opt(func(b *Builder[*ctx]) { b.Op(opCh('-')) })
		b.Op(opCh('5'))
	})

	require.True(t, Run(ax, newCtx("5")))
	require.True(t, Run(ax, newCtx("-5")))
	require.False(t, Run(ax, newCtx("x5")))
}

func TestRepeat_CommittedThenBrokenFiresOnFail(t *testing.T) {
	t.Parallel()
	var firedOn string
	f := New[*ctx]()

	outer := f.Seq(func(b *Builder[*ctx]) {
		b.Rep(1, 3, func(b *Builder[*ctx]) {
			b.Op(opCh('('))
			b.Op(opCh(')'))
		})
		b.OnFail(func(c *ctx) { firedOn = c.s })
	})

	require.False(t, Run(outer, newCtx("(x")))
	require.Equal(t, "(x", firedOn)
}

func TestOptional_SwallowsDeclineButNotHardFailure(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Opt(func(b *Builder[*ctx]) {
			b.Op(opCh('('))
			b.Op(opCh(')'))
		})
		b.Op(opCh('!'))
	})

	require.True(t, Run(ax, newCtx("!")), "clean decline should be swallowed")
	require.True(t, Run(ax, newCtx("()!")))
	require.False(t, Run(ax, newCtx("(!")), "commit then break must not be swallowed")
}

func TestOneOf_TriesAlternativesInOrder(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.OneOf(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.Op(opCh('b'))
	})

	require.True(t, Run(ax, newCtx("a")))
	require.True(t, Run(ax, newCtx("b")))
	require.False(t, Run(ax, newCtx("c")))
}

func TestOneOf_FailRemainderStopsEarly(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	tried := 0
	ax := f.OneOf(func(b *Builder[*ctx]) {
		b.Seq(func(b *Builder[*ctx]) {
			b.Op(opCh('('))
			b.Op(opCh(')'))
		})
		b.Op(func(c *ctx, s *ValueSlot) bool {
			tried++
			return c.match('z')
		})
	})

	require.False(t, Run(ax, newCtx("(x")))
	require.Equal(t, 0, tried, "second alternative must not be tried after a committed break")
}

func TestOneOf_ExhaustedFiresFailAction(t *testing.T) {
	t.Parallel()
	var fired bool
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.OneOf(func(b *Builder[*ctx]) {
			b.Op(opCh('a'))
		})
		b.OnFail(func(*ctx) { fired = true })
	})

	require.False(t, Run(ax, newCtx("z")))
	require.True(t, fired)
}

func TestNotOneOf_InvertsMatchAndPreservesHardFailure(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.NotOneOf(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
	})

	require.True(t, Run(ax, newCtx("z")))
	require.False(t, Run(ax, newCtx("a")))

	hard := f.NotOneOf(func(b *Builder[*ctx]) {
		b.Seq(func(b *Builder[*ctx]) {
			b.Op(opCh('('))
			b.Op(opCh(')'))
		})
	})
	require.False(t, Run(hard, newCtx("(x")), "a committed-then-broken alternative is still a hard failure")
}

func TestRepeat_MandatoryMinimumEnforced(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Rep(2, 4, func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
	})

	require.False(t, Run(ax, newCtx("a")))
	require.True(t, Run(ax, newCtx("aa")))
	require.True(t, Run(ax, newCtx("aaa")))
	require.True(t, Run(ax, newCtx("aaaa")))
}

func TestRepeat_StopsCleanlyAtMax(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Rep(0, 2, func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
	})

	c := newCtx("aaaa")
	require.True(t, Run(ax, c))
	require.Equal(t, 2, c.pos, "repeat must not consume beyond its max")
}

func TestRepeat_Unbounded(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Rep0N(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
	})

	c := newCtx("aaaaa!")
	require.True(t, Run(ax, c))
	require.Equal(t, 5, c.pos)
}

func TestRepeat_MinZeroIsOptionalInSequence(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Rep0N(func(b *Builder[*ctx]) { b.Op(opCh('a')) })
		b.Op(opCh('b'))
	})

	require.True(t, Run(ax, newCtx("b")))
	require.True(t, Run(ax, newCtx("aaab")))
}

func TestOperator_PreOpRunsOnceThenResetsOnNextSuccess(t *testing.T) {
	t.Parallel()
	runs := 0
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.PreOp(func(*ctx) { runs++ })
		b.Op(opCh('b'))
		b.Op(opCh('c'))
	})

	require.False(t, Run(ax, newCtx("abx")))
	require.Equal(t, 1, runs, "pre-op must not re-run while the operator keeps failing downstream siblings")
}

func TestOperator_ValueSlotNullIsTreatedAsNoValue(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var gotValue bool
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(func(c *ctx, slot *ValueSlot) bool {
			ok := c.match('a')
			slot.Set(ok, nil)
			return ok
		})
		ActValue[*ctx, string](b, func(string) { gotValue = true })
	})

	require.True(t, Run(ax, newCtx("a")))
	require.False(t, gotValue, "a nil value must suppress the value-action")
}

func TestActValue_BindsToMostRecentOperatorOnly(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var captured []string
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.Op(opCh('b'))
		ActValue[*ctx, string](b, func(v string) { captured = append(captured, v) })
	})

	require.True(t, Run(ax, newCtx("ab")))
	require.Equal(t, []string{"b"}, captured)
}

func TestActValue_InterveningContainerInvalidatesBinding(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var captured []string
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.Opt(func(b *Builder[*ctx]) { b.Op(opCh('x')) })
		ActValue[*ctx, string](b, func(v string) { captured = append(captured, v) })
	})

	require.True(t, Run(ax, newCtx("a")))
	require.Empty(t, captured, "an intervening container must invalidate the value-action binding")
}

func TestAssert_FailActionFiresOnlyOnViolation(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var failed bool
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.AssertBool(func(c *ctx) bool { return c.peek() == 'a' }, func(*ctx) { failed = true })
		b.Op(opCh('a'))
	})

	require.True(t, Run(ax, newCtx("a")))
	require.False(t, failed)

	require.False(t, Run(ax, newCtx("b")))
	require.True(t, failed)
}

func TestAction_NonCommittingRunsDuringLookaheadButDoesNotCommit(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var actionRan bool
	var branch string
	ax := f.OneOf(func(b *Builder[*ctx]) {
		b.Seq(func(b2 *Builder[*ctx]) {
			b2.Act(func(*ctx) { actionRan = true })
			b2.Op(opCh('x')) // never matches "a", forcing this alternative to decline
		})
		b.Seq(func(b2 *Builder[*ctx]) {
			b2.Op(opCh('a'))
			b2.Act(func(*ctx) { branch = "second" })
		})
	})

	require.True(t, Run(ax, newCtx("a")))
	require.True(t, actionRan, "checkRun is a lookahead, not a dry run: a non-committing action's side effect still fires")
	require.Equal(t, "second", branch, "the first alternative must decline without committing, letting OneOf try the second")
}

func TestAction_CommittingActsImmediately(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var order []string
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.DefaultAct(func(*ctx) { order = append(order, "commit") })
		b.Op(opCh('a'))
	})

	require.True(t, Run(ax, newCtx("a")))
	require.Equal(t, []string{"commit"}, order)
}

func TestRepAction_RunsExactCountWithIndex(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var seen []int
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.RepAct(3, func(_ *ctx, i int) { seen = append(seen, i) })
	})

	require.True(t, Run(ax, newCtx("")))
	require.Equal(t, []int{0, 1, 2}, seen)
}

func TestRepAction_RunsDuringLookaheadButDoesNotCommit(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var seen []int
	var branch string
	ax := f.OneOf(func(b *Builder[*ctx]) {
		b.Seq(func(b2 *Builder[*ctx]) {
			b2.RepAct(3, func(_ *ctx, i int) { seen = append(seen, i) })
			b2.Op(opCh('x')) // never matches "a", forcing this alternative to decline
		})
		b.Seq(func(b2 *Builder[*ctx]) {
			b2.Op(opCh('a'))
			b2.Act(func(*ctx) { branch = "second" })
		})
	})

	require.True(t, Run(ax, newCtx("a")))
	require.Equal(t, []int{0, 1, 2}, seen, "checkRun is a lookahead, not a dry run: RepAct's side effect still fires")
	require.Equal(t, "second", branch, "the first alternative must decline without committing, letting OneOf try the second")
}

func TestFail_AlwaysFiresEvenUnderLookahead(t *testing.T) {
	t.Parallel()
	var fired int
	f := New[*ctx]()
	ax := f.OneOf(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.Fail(func(*ctx) { fired++ })
	})

	require.False(t, Run(ax, newCtx("z")))
	require.Equal(t, 1, fired)
}

func TestNamedRef_RecursiveProductionViaOptSelf(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var digits []byte
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(func(c *ctx, slot *ValueSlot) bool {
			if c.eof() || c.peek() < '0' || c.peek() > '9' {
				return false
			}
			d := c.peek()
			c.pos++
			slot.Set(true, d)
			return true
		})
		ActValue[*ctx, byte](b, func(d byte) { digits = append(digits, d) })
		b.OptSelf()
	})

	require.True(t, Run(ax, newCtx("123")))
	require.Equal(t, []byte("123"), digits)
}

func TestNamedRef_ForwardReferenceResolvesAfterDefinition(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()

	outer := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('('))
		b.Ref("inner")
		b.Op(opCh(')'))
	})

	inner := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('x'))
	})
	f.RefName("inner", inner)

	require.True(t, Run(outer, newCtx("(x)")))
	require.False(t, Run(outer, newCtx("(y)")))
}

func TestNamedRef_UnresolvedIsInertNotPanic(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Ref("never-defined")
	})
	require.False(t, Run(ax, newCtx("")))
}

func TestReferenceRegistry_IsCaseInsensitiveAndLastWriteWins(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	first := f.Seq(func(b *Builder[*ctx]) { b.Op(opCh('1')) })
	second := f.Seq(func(b *Builder[*ctx]) { b.Op(opCh('2')) })

	f.RefName("Expr", first)
	ref := f.Ref("EXPR")
	f.RefName("expr", second)

	require.False(t, Run(ref, newCtx("1")))
	require.True(t, Run(ref, newCtx("2")))
}

func TestTrace_EmitsOnlyWhenEnabledAndTracerSet(t *testing.T) {
	t.Parallel()
	var events []TraceEvent
	rec := recordingTracer(func(ev TraceEvent) { events = append(events, ev) })

	f := New[*ctx](WithTracer[*ctx](rec))
	ax := f.Seq(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.TraceOp(func(*ctx) string { return "matched a" }, 1)
		b.TraceOn(true)
		b.Op(opCh('b'))
		b.TraceOp(func(*ctx) string { return "matched b" }, 1)
	})

	require.True(t, Run(ax, newCtx("ab")))
	require.Len(t, events, 1, "trace_op bound before trace_on(true) must stay silent")
	require.Equal(t, "matched b", events[0].Message)
	require.NotNil(t, events[0].Passed)
	require.True(t, *events[0].Passed)
}

type recordingTracerFunc func(TraceEvent)

func recordingTracer(f func(TraceEvent)) Tracer { return recordingTracerFunc(f) }

func (f recordingTracerFunc) Trace(ev TraceEvent) { f(ev) }

func TestCompositeTracer_FansOutToEveryTracer(t *testing.T) {
	t.Parallel()
	var a, b []TraceEvent
	comp := NewCompositeTracer(
		recordingTracer(func(ev TraceEvent) { a = append(a, ev) }),
		recordingTracer(func(ev TraceEvent) { b = append(b, ev) }),
	)
	comp.Trace(TraceEvent{Message: "x"})
	require.Len(t, a, 1)
	require.Len(t, b, 1)
}

func TestBuilder_OnFailIgnoredWhenLastAddedIsNotFirstClass(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	require.NotPanics(t, func() {
		f.Seq(func(b *Builder[*ctx]) {
			b.Act(func(*ctx) {})
			b.OnFail(func(*ctx) {})
		})
	})
}

func TestTelephoneLikeGrammar_EndToEnd(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var digitGroups []string
	group := func(n int) Node[*ctx] {
		return f.RepN(n, func(b *Builder[*ctx]) {
			b.Op(func(c *ctx, slot *ValueSlot) bool {
				if c.eof() || c.peek() < '0' || c.peek() > '9' {
					return false
				}
				d := c.peek()
				c.pos++
				return slot.Set(true, string(d))
			})
		})
	}
	number := f.Seq(func(b *Builder[*ctx]) {
		b.Fex(group(3))
		b.Op(opCh('-'))
		b.Fex(group(4))
		ActValue[*ctx, string](b, func(v string) { digitGroups = append(digitGroups, v) })
	})

	c := newCtx("555-1234")
	require.True(t, Run(number, c))
	require.True(t, c.eof())
}

func TestArithmeticLikeGrammar_DivisionByZeroIsAHardFailure(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()

	digit := func(b *Builder[*ctx]) {
		b.Op(func(c *ctx, slot *ValueSlot) bool {
			if c.eof() || c.peek() < '0' || c.peek() > '9' {
				return false
			}
			d := int(c.peek() - '0')
			c.pos++
			return slot.Set(true, d)
		})
	}

	var result int
	var divErr bool
	expr := f.Seq(func(b *Builder[*ctx]) {
		digit(b)
		ActValue[*ctx, int](b, func(v int) { result = v })
		b.Opt(func(b *Builder[*ctx]) {
			b.Op(opCh('/'))
			b.Assert(func(c *ctx, slot *ValueSlot) bool {
				return c.peek() != '0'
			}, func(*ctx) { divErr = true })
			digit(b)
			ActValue[*ctx, int](b, func(v int) {
				if v != 0 {
					result /= v
				}
			})
		})
	})

	require.True(t, Run(expr, newCtx("8/4")))
	require.Equal(t, 2, result)
	require.False(t, divErr)

	divErr = false
	require.False(t, Run(expr, newCtx("8/0")))
	require.True(t, divErr)
}

func TestReplLikeLoop_StopsOnSentinel(t *testing.T) {
	t.Parallel()
	f := New[*ctx]()
	var commands []string
	loop := f.Rep0N(func(b *Builder[*ctx]) {
		b.BreakOn(func(b *Builder[*ctx]) {
			b.OpBool(func(c *ctx) bool { return c.peek() == '.' })
		})
		b.Op(func(c *ctx, slot *ValueSlot) bool {
			if c.eof() || c.peek() == '.' {
				return false
			}
			cmd := string(c.peek())
			c.pos++
			return slot.Set(true, cmd)
		})
		ActValue[*ctx, string](b, func(v string) { commands = append(commands, v) })
	})

	c := newCtx("ab.")
	require.True(t, Run(loop, c))
	require.Equal(t, []string{"a", "b"}, commands)
	require.Equal(t, byte('.'), c.peek())
}

func TestBasicMetrics_SnapshotCountsAttemptsAndSplitsPassFail(t *testing.T) {
	t.Parallel()
	metrics := &BasicMetrics{}
	f := New[*ctx](WithTracer[*ctx](metrics), WithTracingEnabled[*ctx](true))
	ax := f.Rep0N(func(b *Builder[*ctx]) {
		b.Op(opCh('a'))
		b.TraceOp(func(*ctx) string { return "attempt" }, 0)
	})

	Run(ax, newCtx("aax"))

	snap := metrics.Snapshot()
	require.Equal(t, int64(3), snap.Attempts, "two matching a's plus the declining check against x")
	require.Equal(t, int64(2), snap.Passes)
	require.Equal(t, int64(1), snap.Fails)
}

func TestStringsHelperSanity(t *testing.T) {
	t.Parallel()
	require.True(t, strings.HasPrefix("flowexpr", "flow"))
}
