// Viewer is a read-only CLI over a running server's BadgerDB: it renders
// stored direct messages as a table without taking the write lock.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// record mirrors the JSON shape the message repository writes.
type record struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	ReceiverID     string `json:"receiverId"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"`
	CreatedAt      int64  `json:"createdAt"`
}

func main() {
	dbPath := flag.String("db", "/tmp/startuplink/badger", "Path to badger DB")
	prefix := flag.String("prefix", "dm:", "Prefix to scan")
	conversation := flag.String("conversation", "", "Restrict to one conversation ID")
	flag.Parse()

	scanPrefix := *prefix
	if *conversation != "" {
		scanPrefix = "dm:" + *conversation + ":"
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := color.New(color.BgBlack, color.FgGreen).
		Render(fmt.Sprintf(" startuplink viewer [%s] ", scanPrefix))
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sent", "Stored", "Conversation", "Sender", "Receiver", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(scanPrefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var r record
				if err := json.Unmarshal(v, &r); err != nil {
					// Log and continue instead of stopping the whole scan
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				table.Append([]string{
					time.UnixMilli(r.Timestamp).UTC().Format("15:04:05.000"),
					time.Unix(0, r.CreatedAt).UTC().Format("15:04:05.000"),
					shorten(r.ConversationID, 24),
					r.SenderID,
					r.ReceiverID,
					r.Message,
				})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d record(s)\n", count)
}

func shorten(s string, n int) string {
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the server holds the write lock
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		// Corrupted tail: reopen in write mode once to let Badger truncate
		repairOpts := badger.DefaultOptions(path).
			WithLogger(nil).WithBypassLockGuard(true)
		return badger.Open(repairOpts)
	}
	return db, err
}
