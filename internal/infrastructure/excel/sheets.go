// Package excel builds and parses the tender workbooks exchanged with the
// trading platform's users. Sheet and column names are the Russian labels
// the platform has always used; parsers treat them as the contract.
package excel

// Sheet names.
const (
	SheetMain         = "Основная информация"
	SheetOrganizers   = "Организаторы"
	SheetLots         = "Лоты"
	SheetProducts     = "Товары"
	SheetDocuments    = "Документы"
	SheetTenders      = "Тендеры"
	SheetApplications = "Заявки"
)

// Timestamps in workbooks use day-first format.
const dateTimeLayout = "02.01.2006 15:04"
const dateLayout = "02.01.2006"

// Key/value labels of the main sheet.
const (
	labelTenderID          = "ID тендера"
	labelTitle             = "Название"
	labelDescription       = "Описание"
	labelInitialPrice      = "Начальная цена"
	labelCurrency          = "Валюта"
	labelStatus            = "Статус"
	labelPublicationDate   = "Дата публикации"
	labelDeadline          = "Срок подачи заявок"
	labelOKPD              = "Код ОКПД2"
	labelOKVED             = "Код ОКВЭД2"
	labelRegion            = "Регион"
	labelProcurementMethod = "Способ закупки"
	labelCreatedAt         = "Дата создания"
)

var organizerHeader = []any{
	"ID", "Название организации", "Юридический адрес", "Почтовый адрес",
	"Email", "Телефон", "Контактное лицо", "ИНН", "КПП", "ОГРН",
}

var lotHeader = []any{
	"ID лота", "Номер лота", "Название", "Описание", "Начальная цена", "Валюта",
	"Обеспечение заявки", "Место поставки", "Условия оплаты", "Количество",
	"Единица измерения", "Код ОКПД2", "Код ОКВЭД2",
}

var productHeader = []any{
	"ID лота", "Номер лота", "ID товара", "Номер позиции", "Наименование",
	"Количество", "Единица измерения",
}

var documentHeader = []any{
	"ID", "Название", "Путь к файлу", "Размер файла", "Тип файла", "Дата загрузки",
}

var tendersHeader = []any{
	"ID", "Название", "Описание", "Начальная цена", "Валюта", "Статус",
	"Дата публикации", "Срок подачи заявок", "Код ОКПД2", "Код ОКВЭД2",
	"Регион", "Способ закупки",
}

var applicationsHeader = []any{
	"ID заявки", "Поставщик", "Email", "Компания", "ИНН",
	"Предложенная цена", "Комментарий", "Статус", "Дата подачи",
}
