package methodset_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traitmatch/traitmatch-go/methodset"
)

type closer struct{}

func (closer) Close() error { return nil }

type store struct{}

func (*store) Get(key string) (string, bool) { return "", false }
func (*store) Put(key, value string)         {}
func (*store) Keys(prefix ...string) []string {
	return nil
}

func TestSatisfies_ArityCheck(t *testing.T) {
	assert.True(t, methodset.Satisfies(closer{}, methodset.MethodSpec{
		Name: "Close", NumIn: 0, NumOut: 1,
	}))
	assert.False(t, methodset.Satisfies(closer{}, methodset.MethodSpec{
		Name: "Close", NumIn: 1, NumOut: 1,
	}))
	assert.False(t, methodset.Satisfies(closer{}, methodset.MethodSpec{
		Name: "Open", NumIn: 0, NumOut: 1,
	}))
}

func TestSatisfies_PointerReceiverMethods(t *testing.T) {
	// Value candidates are checked against the widest (pointer) method set.
	assert.True(t, methodset.Satisfies(store{},
		methodset.MethodSpec{Name: "Get", NumIn: 1, NumOut: 2},
		methodset.MethodSpec{Name: "Put", NumIn: 2, NumOut: 0},
	))
	assert.True(t, methodset.Satisfies(&store{},
		methodset.MethodSpec{Name: "Get", NumIn: 1, NumOut: 2},
	))
}

func TestSatisfies_Variadic(t *testing.T) {
	assert.True(t, methodset.Satisfies(store{}, methodset.MethodSpec{
		Name: "Keys", NumIn: 1, NumOut: 1, Variadic: true,
	}))
	assert.False(t, methodset.Satisfies(store{}, methodset.MethodSpec{
		Name: "Keys", NumIn: 1, NumOut: 1, Variadic: false,
	}))
}

func TestSatisfies_SignatureCheck(t *testing.T) {
	get := reflect.TypeOf(func(string) (string, bool) { return "", false })
	assert.True(t, methodset.Satisfies(store{}, methodset.MethodSpec{
		Name: "Get", Signature: get,
	}))

	wrong := reflect.TypeOf(func(int) (string, bool) { return "", false })
	assert.False(t, methodset.Satisfies(store{}, methodset.MethodSpec{
		Name: "Get", Signature: wrong,
	}))
}

func TestSatisfies_InterfaceType(t *testing.T) {
	writerType := reflect.TypeOf((*interface{ Write([]byte) (int, error) })(nil)).Elem()
	assert.True(t, methodset.Satisfies(writerType, methodset.MethodSpec{
		Name: "Write", NumIn: 1, NumOut: 2,
	}))
}

func TestSatisfies_NilCandidate(t *testing.T) {
	assert.False(t, methodset.Satisfies(nil, methodset.MethodSpec{Name: "Close"}))
}

func TestExplain_Report(t *testing.T) {
	report := methodset.Explain(store{},
		methodset.MethodSpec{Name: "Get", NumIn: 1, NumOut: 2},
		methodset.MethodSpec{Name: "Delete", NumIn: 1, NumOut: 1},
		methodset.MethodSpec{Name: "Put", NumIn: 3, NumOut: 0},
	)

	assert.False(t, report.OK)
	assert.Equal(t, []string{"Delete"}, report.Missing)
	require.Contains(t, report.Mismatched, "Put")
	assert.Contains(t, report.Mismatched["Put"], "2 parameters, want 3")
	assert.NotContains(t, report.Mismatched, "Get")
}

func TestExplain_SignatureMismatchReason(t *testing.T) {
	wrong := reflect.TypeOf(func(int) error { return nil })
	report := methodset.Explain(closer{}, methodset.MethodSpec{Name: "Close", Signature: wrong})

	assert.False(t, report.OK)
	require.Contains(t, report.Mismatched, "Close")
	assert.Contains(t, report.Mismatched["Close"], "want func(int) error")
}

func TestExplain_AllSatisfied(t *testing.T) {
	report := methodset.Explain(closer{}, methodset.MethodSpec{Name: "Close", NumIn: 0, NumOut: 1})
	assert.True(t, report.OK)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Mismatched)
}

func TestExplain_NilCandidateListsEverythingMissing(t *testing.T) {
	report := methodset.Explain(nil,
		methodset.MethodSpec{Name: "B"},
		methodset.MethodSpec{Name: "A"},
	)
	assert.False(t, report.OK)
	assert.Equal(t, []string{"A", "B"}, report.Missing)
}
