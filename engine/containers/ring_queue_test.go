package containers

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestRingQueueWrapsAround(t *testing.T) {
	g := NewGomegaWithT(t)

	rq := NewRingQueue[int](3)
	g.Expect(rq.IsEmpty()).To(BeTrue())
	g.Expect(rq.Cap()).To(Equal(3))

	for i := 1; i <= 3; i++ {
		g.Expect(rq.Enqueue(i)).To(Succeed())
	}
	g.Expect(rq.IsFull()).To(BeTrue())
	g.Expect(rq.Enqueue(4)).To(MatchError(ErrQueueFull))

	v, err := rq.Dequeue()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal(1))

	g.Expect(rq.Enqueue(4)).To(Succeed())
	head, err := rq.Peek()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(head).To(Equal(2))
	g.Expect(rq.Len()).To(Equal(3))
	g.Expect(rq.Items()).To(Equal([]int{2, 3, 4}))
	g.Expect(rq.Len()).To(Equal(3))

	g.Expect(rq.Drain()).To(Equal([]int{2, 3, 4}))
	g.Expect(rq.IsEmpty()).To(BeTrue())

	_, err = rq.Dequeue()
	g.Expect(err).To(MatchError(ErrQueueEmpty))
	_, err = rq.Peek()
	g.Expect(err).To(MatchError(ErrQueueEmpty))
}

func TestRingQueueMinimumSize(t *testing.T) {
	g := NewGomegaWithT(t)

	rq := NewRingQueue[string](0)
	g.Expect(rq.Cap()).To(Equal(1))
	g.Expect(rq.Enqueue("a")).To(Succeed())
	g.Expect(rq.Enqueue("b")).To(MatchError(ErrQueueFull))
}
