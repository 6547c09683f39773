// Тестовый клиент для grpc
package main

import (
	"context"
	"flag"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/iurnickita/shortlink/internal/shortener/grpc_server/proto"
)

func main() {
	addr := flag.String("g", "localhost:3200", "address of gRPC server")
	url := flag.String("u", "https://monkeytype.com/", "URL to shorten")
	flag.Parse()

	// устанавливаем соединение с сервером
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()
	// получаем переменную интерфейсного типа ShortenerClient,
	// через которую будем отправлять сообщения
	c := pb.NewShortenerClient(conn)

	if err := testShortener(context.Background(), c, *url); err != nil {
		log.Fatal(err)
	}
}

func testShortener(ctx context.Context, c pb.ShortenerClient, url string) error {
	log.Printf("Создается короткая ссылка для URL: %s", url)
	setResp, err := c.Shorten(ctx, &pb.ShortenRequest{Url: url})
	if err != nil {
		return err
	}
	log.Printf("Получена короткая ссылка: %s", setResp.ShortCode)

	log.Printf("Попытка перехода по короткой ссылке: %s", setResp.ShortCode)
	getResp, err := c.Resolve(ctx, &pb.ResolveRequest{ShortCode: setResp.ShortCode})
	if err != nil {
		return err
	}
	log.Printf("Получена URL: %s", getResp.Url)

	statsResp, err := c.Stats(ctx, &pb.StatsRequest{ShortCode: setResp.ShortCode})
	if err != nil {
		return err
	}
	log.Printf("Переходов: %d, создана: %s", statsResp.Clicks, statsResp.CreatedAt)
	return nil
}
