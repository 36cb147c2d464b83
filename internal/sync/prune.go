package sync

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/transport"
)

// PruneResult summarizes a pull --prune sweep.
type PruneResult struct {
	Removed   []string
	Confirmed bool
}

// Prune compares remote-vs-local hashes for set, lists the local-only
// differences, asks for a y/Y confirmation on stdin, and only then
// removes the corresponding local .raw/.meta pairs.
func Prune(tr transport.Transport, store *objectstore.Store, set string, confirm func(diff []string) (bool, error)) (*PruneResult, error) {
	keys, err := tr.ListFiles(documentsPrefix(set))
	if err != nil {
		return nil, err
	}
	remoteHashes := make(map[string]bool, len(keys))
	for _, key := range keys {
		if hash := hashFromDocumentKey(key); hash != "" {
			remoteHashes[hash] = true
		}
	}

	localHashes := localObjectHashes(store)

	var diff []string
	for hash := range localHashes {
		if !remoteHashes[hash] {
			diff = append(diff, hash)
		}
	}

	result := &PruneResult{}
	if len(diff) == 0 {
		return result, nil
	}

	if confirm == nil {
		confirm = confirmOnStdin
	}
	ok, err := confirm(diff)
	if err != nil {
		return result, err
	}
	result.Confirmed = ok
	if !ok {
		return result, nil
	}

	for _, hash := range diff {
		os.Remove(store.MetaPath(hash))
		os.Remove(store.ObjectsDir() + string(os.PathSeparator) + hash + ".raw")
		result.Removed = append(result.Removed, hash)
	}
	return result, nil
}

// confirmOnStdin is the default confirmation prompt: lists the objects
// that would be removed and asks for y/Y.
func confirmOnStdin(diff []string) (bool, error) {
	fmt.Printf("%d local objects are not present on the remote and would be removed:\n", len(diff))
	for _, hash := range diff {
		fmt.Printf("  %s\n", hash)
	}

	prompt := promptui.Prompt{
		Label:     "Remove these local objects",
		IsConfirm: true,
	}
	answer, err := prompt.Run()
	if err != nil {
		// promptui returns an error when the user declines; treat any
		// answer other than y/Y as "no".
		return false, nil
	}
	return strings.EqualFold(answer, "y"), nil
}
