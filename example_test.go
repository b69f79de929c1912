package dsv_test

import (
	"errors"
	"fmt"

	"github.com/oleg578/dsv"
)

func ExampleReader_PopField() {
	r := dsv.NewStringReader("name,quote\r\nada,\"said \"\"hi\"\"\"\r\n")

	for {
		var fields []string
		for {
			field, err := r.PopField()
			if errors.Is(err, dsv.ErrEndOfRecord) {
				break
			}
			if err != nil {
				fmt.Println("error:", err)
				return
			}
			fields = append(fields, field)
		}
		fmt.Printf("%q\n", fields)

		ok, err := r.NextRecord()
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if !ok {
			break
		}
	}
	// Output:
	// ["name" "quote"]
	// ["ada" "said \"hi\""]
}

func ExampleReader_ReadAll() {
	r := dsv.NewStringReader("a\tb c\n\"d\te\"\tf\n")
	r.Separator = '\t'

	records, err := r.ReadAll()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%q\n", records)
	// Output:
	// [["a" "b c"] ["d\te" "f"]]
}

func ExampleParseError() {
	_, err := dsv.NewStringReader("\"abc\"x").ReadAll()

	var perr *dsv.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Line, perr.Column, errors.Is(err, dsv.ErrUnexpectedChar))
	}
	// Output:
	// 1 6 true
}

func ExampleWriter() {
	w := dsv.NewWriter()
	w.Separator = ';'
	w.NewLine = "\n"

	w.WriteRecord([]string{"id", "note"})
	w.WriteField("1")
	w.WriteField("semi; \"quoted\", comma")
	w.NextRecord()

	fmt.Print(w.String())
	// Output:
	// id;note
	// 1;"semi; ""quoted"", comma"
}
