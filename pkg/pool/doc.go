/*
Package pool fans client requests onto a static pool of workers.

Each worker owns one FIFO queue. Submission picks a queue with a single
atomic round-robin counter and pushes to the tail under a try-lock, so
unrelated requests never serialize behind each other. Workers pop from the
head of their own queue; when empty they steal from the tail of a peer, and
when no work is found anywhere they sleep with linear backoff capped at
50ms:

	submit ──round-robin──► ┌────────┐   pop(head)  ┌──────────┐
	                        │ queue0 │ ───────────► │ worker 0 │
	                        ├────────┤              ├──────────┤
	                        │ queue1 │ ◄──steal──── │ worker 1 │
	                        ├────────┤    (tail)    ├──────────┤
	                        │  ...   │              │   ...    │
	                        └────────┘              └──────────┘

Submission is non-blocking and best-effort: it fails when the pool is shut
down or the chosen queue's lock is contended at that instant. Callers treat
the failure as a transient dispatch error.

Every task carries a single-shot reply channel (capacity 1). The worker runs
the command through the injected Executor and sends exactly one Result; a
dropped receiver is not an error. Shutdown flags the pool and every queue
and joins the workers: each worker re-checks the flag before popping, so
tasks still queued at shutdown are dropped and only work already executing
finishes.
*/
package pool
