package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

type Person struct {
	Name   string  `parquet:"name"`
	Age    int32   `parquet:"age"`
	City   string  `parquet:"city"`
	Active bool    `parquet:"active"`
	Score  float64 `parquet:"score"`
}

var people = []Person{
	{Name: "alice", Age: 30, City: "Paris", Active: true, Score: 95.5},
	{Name: "bob", Age: 25, City: "Berlin", Active: false, Score: 82.3},
	{Name: "charlie", Age: 35, City: "Paris", Active: true, Score: 88.7},
	{Name: "diana", Age: 28, City: "Oslo", Active: true, Score: 91.2},
	{Name: "eve", Age: 42, City: "Berlin", Active: false, Score: 76.8},
}

func writeParquet(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Person](file)
	if _, err := writer.Write(people); err != nil {
		return err
	}
	return writer.Close()
}

func writeCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	_ = w.Write([]string{"name", "age", "city", "active", "score"})
	for _, p := range people {
		_ = w.Write([]string{
			p.Name,
			strconv.Itoa(int(p.Age)),
			p.City,
			strconv.FormatBool(p.Active),
			strconv.FormatFloat(p.Score, 'g', -1, 64),
		})
	}
	w.Flush()
	return w.Error()
}

func main() {
	if err := writeParquet("people.parquet"); err != nil {
		log.Fatal(err)
	}
	if err := writeCSV("people.csv"); err != nil {
		log.Fatal(err)
	}
	log.Printf("Generated people.parquet and people.csv with %d rows", len(people))
}
