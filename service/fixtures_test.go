package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Two three-sentence corpora. Sentence s1 is identical on both sides, s2
// differs by one extra leaf, s3 differs only in the root relation subtype
// and UPOS of one word.
const leftCorpus = `# sent_id = s1
# text = The cat sleeps
1	The	the	DET	_	_	2	det	_	_
2	cat	cat	NOUN	_	_	3	nsubj	_	_
3	sleeps	sleep	VERB	_	_	0	root	_	_

# sent_id = s2
# text = Dogs bark
1	Dogs	dog	NOUN	_	_	2	nsubj	_	_
2	bark	bark	VERB	_	_	0	root	_	_

# sent_id = s3
# text = It was eaten
1	It	it	PRON	_	_	3	nsubj:pass	_	_
2	was	be	AUX	_	_	3	aux:pass	_	_
3	eaten	eat	VERB	_	_	0	root	_	_

`

const rightCorpus = `# sent_id = s1
# text = The cat sleeps
1	The	the	DET	_	_	2	det	_	_
2	cat	cat	NOUN	_	_	3	nsubj	_	_
3	sleeps	sleep	VERB	_	_	0	root	_	_

# sent_id = s2
# text = Dogs bark loudly
1	Dogs	dog	NOUN	_	_	2	nsubj	_	_
2	bark	bark	VERB	_	_	0	root	_	_
3	loudly	loudly	ADV	_	_	2	advmod	_	_

# sent_id = s3
# text = It was eaten
1	It	it	PRON	_	_	3	nsubj	_	_
2	was	be	VERB	_	_	3	aux:pass	_	_
3	eaten	eat	VERB	_	_	0	root	_	_

`

func writeCorpus(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
