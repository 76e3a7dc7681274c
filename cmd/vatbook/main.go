// Command vatbook prints and exports VAT books, liquidations and owner
// summaries straight from the database.
package main

func main() {
	Execute()
}
