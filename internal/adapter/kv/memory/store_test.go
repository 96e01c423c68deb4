package memory

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"reminders/internal/core/domain"
)

func TestStore_PutGetDelete(t *testing.T) {
	RegisterTestingT(t)
	ctx := context.Background()
	s := NewStore()

	Expect(s.Put(ctx, "reminder:1", []byte(`{"id":"1"}`))).To(Succeed())

	v, err := s.Get(ctx, "reminder:1")
	Expect(err).To(BeNil())
	Expect(string(v)).To(Equal(`{"id":"1"}`))

	Expect(s.Delete(ctx, "reminder:1")).To(Succeed())

	_, err = s.Get(ctx, "reminder:1")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func TestStore_DeleteMissingKey(t *testing.T) {
	RegisterTestingT(t)

	Expect(NewStore().Delete(context.Background(), "reminder:nope")).To(Succeed())
}

func TestStore_ValuesAreCopied(t *testing.T) {
	RegisterTestingT(t)
	ctx := context.Background()
	s := NewStore()

	value := []byte("abc")
	s.Put(ctx, "k", value)
	value[0] = 'x'

	got, _ := s.Get(ctx, "k")
	Expect(string(got)).To(Equal("abc"))

	got[1] = 'y'
	again, _ := s.Get(ctx, "k")
	Expect(string(again)).To(Equal("abc"))
}

func TestStore_ListByPrefix(t *testing.T) {
	RegisterTestingT(t)
	ctx := context.Background()
	s := NewStore()

	s.Put(ctx, "reminder:b", []byte("b"))
	s.Put(ctx, "reminder:a", []byte("a"))
	s.Put(ctx, "session:x", []byte("x"))

	keys, err := s.List(ctx, "reminder:")
	Expect(err).To(BeNil())
	Expect(keys).To(Equal([]string{"reminder:a", "reminder:b"}))

	all, _ := s.List(ctx, "")
	Expect(all).To(HaveLen(3))
	Expect(s.Len()).To(Equal(3))

	s.Flush()
	empty, _ := s.List(ctx, "reminder:")
	Expect(empty).To(BeEmpty())
}

func TestStore_CancelledContext(t *testing.T) {
	RegisterTestingT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStore()
	Expect(s.Put(ctx, "k", nil)).ToNot(Succeed())

	_, err := s.List(ctx, "")
	Expect(err).To(MatchError(context.Canceled))
}
