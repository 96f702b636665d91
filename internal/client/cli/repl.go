package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

var printlnFn = fmt.Println

type execIface interface {
	Help()
	Tab(ctx context.Context, args []string) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	ImgAdd(ctx context.Context, args []string) error
	ImgRm(ctx context.Context, args []string) error
	ImgNext(ctx context.Context) error
	ImgPrev(ctx context.Context) error
	Img(ctx context.Context, args []string) error
	Submit(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Orphans(ctx context.Context, args []string) error
	Purge(ctx context.Context, args []string) error
}

func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rentadmin [%s] > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		var err error

		switch cmd {
		case "help":
			a.Help()
		case "tab":
			err = a.Tab(ctx, args)
		case "list":
			err = a.List(ctx)
		case "new":
			err = a.New(ctx)
		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			err = a.Edit(ctx, args)
		case "set":
			if len(args) < 1 {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			err = a.Set(ctx, args)
		case "show":
			err = a.Show(ctx)
		case "img-add":
			if len(args) < 1 {
				printlnFn("Usage: img-add <path|s3://bucket/key>...")
				continue
			}
			err = a.ImgAdd(ctx, args)
		case "img-rm":
			if len(args) != 1 {
				printlnFn("Usage: img-rm <n>")
				continue
			}
			err = a.ImgRm(ctx, args)
		case "img-next":
			err = a.ImgNext(ctx)
		case "img-prev":
			err = a.ImgPrev(ctx)
		case "img":
			if len(args) != 1 {
				printlnFn("Usage: img <n>")
				continue
			}
			err = a.Img(ctx, args)
		case "submit":
			err = a.Submit(ctx)
		case "cancel":
			err = a.Cancel(ctx)
		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			err = a.Delete(ctx, args)
		case "orphans":
			err = a.Orphans(ctx, args)
		case "purge":
			if len(args) != 2 {
				printlnFn("Usage: purge <kind> <id>")
				continue
			}
			err = a.Purge(ctx, args)
		case "exit", "quit":
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}
