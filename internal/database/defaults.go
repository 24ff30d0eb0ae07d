package database

// DefaultKeywords is the built-in rule list seeded into an empty store.
// All entries are literal phrases; the list intentionally contains
// near-duplicates and common misspellings to widen recall.
var DefaultKeywords = []string{
	"تعروفون احد يسوي",
	"تعرفون احد يحل",
	"تعرفون احد يطلع",
	"تعرفون حد يسوي",
	"تعرفون حد يساعندي",
	"تعرفون حد يحل",
	"تعرفون شخص يسوي",
	"تعرفون شخص يحل",
	"تعرفون شخص يطلع",
	"تعرفون ناس يسون",
	"تعرفون ناس تحل",
	"تعرفون ناس يحلون",
	"تعرفون ناس تطلع اعذار",
	"تعرفون ناس تطلع سكليف",
	"تعرفون ناس يطلعون اعذار",
	"تعرفون ناس يطلعون سكليف",
	"ابي احد يحل",
	"ابي احد يسوي",
	"ابي احد يساعدني",
	"ابي احد يطلع",
	"ابي احد يلخص",
	"ابي مساعده",
	"ابي مساعدة",
	"ابي احد يصمم",
	"عندكم احد يحل",
	"عندكم احد يسوي",
	"عندكم احد يطلع",
	"ابغى احد يحل",
	"ابغى احد يسوي",
	"ابغى احد يطلع",
	"ابغى احد يساعدني",
	"احد يحل واجب",
	"احد يسوي واجب",
	"احد يطلع سكليف",
	"احد يطلع اعذار",
	"ابغا احد يحل",
	"ابغا احد يسوي",
	"ابغا احد يطلع",
	"يحل كويز",
	"من يحل واجب",
	"من يسوي لي واجب",
	"من يسوي سكليف",
	"من يسوي تلخيص",
	"من يسوي بروزنتيشن",
	"من يسوي بوربوينت",
	"من يسوي تصميم",
	"من وين اجيب سكليف",
	"كيف اجيب سكليف",
	"كيف اخذ سكليف",
	"كيف اجيب عذر",
	"ابغى عذر",
	"ابغا حد يحل واجب",
	"ابي احد يحل لي واجب",
	"فيه احد يقدر يسوي عرض",
	"تعرفون احد يسوي برفريزنق",
	"تعرفون احد يطلع سكليف",
	"يساعدني",
	"السلام عليكم فيه احد يحل",
	"السلام عليكم فيه احد يسوي",
	"السلام عليكم فيه احد يطلع",
	"فيه احد يحل يساعدني",
	"احد يعرف مضمون يسوي اعذار",
	"تعرفون احد يسوي",
	"احتاج مساعده",
	"احتاج مساعدة",
	"ابغى مساعده",
	"ابغى مساعدة",
	"حد يعرف حد يحل",
	"حد يعرف حد يسوي",
	"حد يعرف حد يطلع",
	"حد يعرف حد يساعدني",
	"بنات اللي يسون سكسليقات ثقه ولا ابي سكليف",
	"ابي سكليف على تاريخ قديم في احد يسوي",
	"احد يسوي عروض تقديميه",
	"احد يسوي سكليف",
	"احد يسوي بحث",
	"احد يسوي عذر",
	"احد يسوي تقرير",
	"ابي عذر",
	"ابغا عذر",
	"احتاج عذر",
	"احتاج اعذار",
	"مين يحل كويز",
	"مين يحل واجب",
	"مين يحل واجبات",
	"مين يسوي واجب",
	"مين يسوي بحث",
	"مين يسوي تقرير",
	"مين يسوي عروض",
	"مين يسوي سكليف",
	"مين يطلع عذر",
	"مين يطلع اعذار",
	"مين يطلع سكليف",
	"مين يطلع اجازة مرضية",
	"فيه احد يطلع سكليف",
	"فيه احد يطلع اعذار",
	"فيه احد يطلع اجازة مرضية",
	"فيه احد يسوي واجب",
	"فيه احد يسوي واجبات",
	"فيه احد يسوي بحوث",
	"فيه احد يسوي بحث",
	"ابي رقم احد يسوي سكليف ثقه",
	"ابي رقم احد يسوي بحث",
	"ابي رقم احد يسوي واجبات",
	"ابي رقم احد يسوي اجازة مرضية",
	"ابي رقم احد يسوي عرض",
	"ابي رقم احد يسوي عروض",
	"ابي احد يسوي لي سكليف",
	"ابي احد يسوي لي تقرير",
	"ابي احد يسوي لي بحث",
	"تعرفون ناس يحلون واجبات",
	"تعرفون ناس يسون بحوث",
	"تعرفون ناس يسون عروض",
	"تعرفون ناس يسون اجازات مرضية",
	"ياخوان ابي حد يحل كويز فيزياء",
	"ابي حد يحل كويز",
	"السلام عليكم بغيت واحد يسوي لي ميرشنت",
	"بغيت واحد يسوي لي ميرشنت",
	"بغيت واحد يسوي لي واجب",
	"احد يعرف شخص يسوي خريطه ذهنيه",
	"احد يعرف شخص يسوي سكليف",
	"مين يعرف يحل انقليزي",
	"مين يعرف يحل واجب",
	"مين يعرف يسوي بحث",
	"ابي دكتور يحل لي",
	"ابي دكتور يسوي لي",
	"ابي دكتور يطلع لي",
	"من يعرف واحد يسوي",
}
