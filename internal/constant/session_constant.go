package constant

// Session lifecycle statuses. Transitions move forward only, except that
// ingestion failures park the session in FAILED until a re-ingest.
const (
	SessionStatusAwaitingUpload = "AWAITING_UPLOAD"
	SessionStatusReadyForQuery  = "READY_FOR_QUERY"
	SessionStatusFailed         = "FAILED"
)

// ChunkIdPrefix builds chunk ids as chunk_0, chunk_1, ... in ingestion order.
const ChunkIdPrefix = "chunk_"
